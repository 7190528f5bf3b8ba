package pool_test

import (
	"testing"

	"github.com/randomizedcoder/go-ctrlpool/internal/pool"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkInt int

// Round trip: submit, then block on the future.
func BenchmarkPool_SubmitGet_1Worker(b *testing.B) {
	p := pool.New[int](1)
	defer p.Close()
	b.ReportAllocs()
	b.ResetTimer()

	var v int
	for i := 0; i < b.N; i++ {
		v, _ = p.SubmitFunc(func() int { return i }).Get()
	}
	sinkInt = v
}

// Throughput: submit from all Ps, settle asynchronously.
func BenchmarkPool_Submit_Parallel(b *testing.B) {
	p := pool.New[int](0)
	defer p.Close()
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		var last *pool.Future[int]
		for pb.Next() {
			last = p.SubmitFunc(func() int { return 1 })
		}
		if last != nil {
			_, _ = last.Get()
		}
	})
}
