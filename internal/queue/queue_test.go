package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/go-ctrlpool/internal/queue"
)

func testQueue[T comparable](t *testing.T, q queue.Queue[T], val T) {
	t.Helper()

	// Empty queue returns false without blocking
	_, ok := q.TryPop()
	assert.False(t, ok, "TryPop on empty queue")
	assert.Equal(t, 0, q.Len())

	require.True(t, q.Push(val), "Push on active queue")
	assert.Equal(t, 1, q.Len())

	got, ok := q.Pop()
	require.True(t, ok, "Pop after Push")
	assert.Equal(t, val, got)

	_, ok = q.TryPop()
	assert.False(t, ok, "TryPop after draining")
	assert.False(t, q.Terminated())
}

func TestAtomicQueue(t *testing.T) {
	testQueue[int](t, queue.NewAtomicQueue[int](), 42)
}

func TestAtomicBuffer(t *testing.T) {
	testQueue[int](t, queue.NewAtomicBuffer[int](8), 42)
}

// Test that both implementations satisfy the interface
func TestQueueInterface(t *testing.T) {
	testCases := []struct {
		name string
		q    queue.Queue[string]
	}{
		{"AtomicQueue", queue.NewAtomicQueue[string]()},
		{"AtomicBuffer", queue.NewAtomicBuffer[string](4)},
		{"AtomicBuffer_Size1", queue.NewAtomicBuffer[string](1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testQueue(t, tc.q, "sample")
		})
	}
}

func TestAtomicQueue_FIFO(t *testing.T) {
	q := queue.NewAtomicQueue[int]()

	var want []int
	for i := 0; i < 100; i++ {
		require.True(t, q.Push(i))
		want = append(want, i)
	}

	var got []int
	for range want {
		v, ok := q.Pop()
		require.True(t, ok)
		got = append(got, v)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FIFO violation (-want +got):\n%s", diff)
	}
}

func TestAtomicQueue_GrowAcrossWrap(t *testing.T) {
	q := queue.NewAtomicQueue[int]()

	// Advance the read cursor so the next growth has to unwrap the ring.
	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	for i := 0; i < 5; i++ {
		v, _ := q.Pop()
		require.Equal(t, i, v)
	}
	for i := 10; i < 50; i++ {
		q.Push(i)
	}
	require.Equal(t, 45, q.Len())

	for i := 5; i < 50; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, v, "FIFO violation after growth")
	}
}

func TestAtomicBuffer_DropOldest(t *testing.T) {
	const n, k = 4, 3
	b := queue.NewAtomicBuffer[int](n)

	for i := 0; i < n+k; i++ {
		require.True(t, b.Push(i))
	}
	assert.Equal(t, n, b.Len())
	assert.Equal(t, uint64(k), b.Dropped())

	var got []int
	for i := 0; i < n; i++ {
		v, ok := b.Pop()
		require.True(t, ok)
		got = append(got, v)
	}
	if diff := cmp.Diff([]int{3, 4, 5, 6}, got); diff != "" {
		t.Errorf("expected the last %d pushes (-want +got):\n%s", n, diff)
	}

	_, ok := b.TryPop()
	assert.False(t, ok, "dropped items must be unrecoverable")
}

func TestAtomicBuffer_InterleavedOverflow(t *testing.T) {
	b := queue.NewAtomicBuffer[int](3)

	b.Push(1)
	b.Push(2)
	v, _ := b.Pop()
	require.Equal(t, 1, v)

	b.Push(3)
	b.Push(4)
	b.Push(5) // overwrites 2

	assert.Equal(t, []int{3, 4, 5}, b.Drain())
	assert.Equal(t, uint64(1), b.Dropped())
	assert.Equal(t, 0, b.Len())
}

func TestAtomicBuffer_LenCap(t *testing.T) {
	b := queue.NewAtomicBuffer[int](5)

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 5, b.Cap(), "capacity is exact, not rounded")

	for i := 0; i < 12; i++ {
		b.Push(i)
		assert.LessOrEqual(t, b.Len(), b.Cap())
	}
	assert.Equal(t, 5, b.Len())
}

func TestNewAtomicBuffer_InvalidSize(t *testing.T) {
	assert.Panics(t, func() { queue.NewAtomicBuffer[int](0) })
	assert.Panics(t, func() { queue.NewAtomicBuffer[int](-1) })
}

func TestEmplace(t *testing.T) {
	type sample struct {
		seq  int
		name string
	}
	testCases := []struct {
		name string
		q    queue.Queue[sample]
	}{
		{"AtomicQueue", queue.NewAtomicQueue[sample]()},
		{"AtomicBuffer", queue.NewAtomicBuffer[sample](2)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.q.Emplace(func() sample { return sample{seq: 1, name: "a"} }))
			got, ok := tc.q.Pop()
			require.True(t, ok)
			assert.Equal(t, sample{seq: 1, name: "a"}, got)

			tc.q.Terminate()
			called := false
			assert.False(t, tc.q.Emplace(func() sample { called = true; return sample{} }))
			assert.False(t, called, "constructor must not run on a terminated queue")
		})
	}
}

func TestPopInto(t *testing.T) {
	q := queue.NewAtomicQueue[int]()
	q.Push(7)

	dst := -1
	require.True(t, q.PopInto(&dst))
	assert.Equal(t, 7, dst)

	q.Terminate()
	dst = -1
	assert.False(t, q.PopInto(&dst))
	assert.Equal(t, -1, dst, "dst must be untouched on termination")
}

func TestTerminate_RejectsPushAndHidesItems(t *testing.T) {
	testCases := []struct {
		name string
		q    queue.Queue[int]
	}{
		{"AtomicQueue", queue.NewAtomicQueue[int]()},
		{"AtomicBuffer", queue.NewAtomicBuffer[int](4)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.q.Push(1)
			tc.q.Push(2)
			tc.q.Terminate()

			assert.True(t, tc.q.Terminated())
			assert.False(t, tc.q.Push(3), "Push after Terminate")

			// Pop does not block and yields nothing, even with items stored.
			v, ok := tc.q.Pop()
			assert.False(t, ok)
			assert.Zero(t, v)
			_, ok = tc.q.TryPop()
			assert.False(t, ok)

			// Owners can still recover the leftovers.
			assert.Equal(t, []int{1, 2}, tc.q.Drain())
			assert.Nil(t, tc.q.Drain())
		})
	}
}

func TestPopContext(t *testing.T) {
	t.Run("Item", func(t *testing.T) {
		q := queue.NewAtomicQueue[int]()
		q.Push(5)
		v, err := q.PopContext(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 5, v)
	})

	t.Run("AlreadyCancelled", func(t *testing.T) {
		q := queue.NewAtomicQueue[int]()
		q.Push(5)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := q.PopContext(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, q.Len(), "item must stay queued")
	})

	t.Run("Deadline", func(t *testing.T) {
		b := queue.NewAtomicBuffer[int](1)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		start := time.Now()
		_, err := b.PopContext(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("Terminated", func(t *testing.T) {
		q := queue.NewAtomicQueue[int]()
		done := make(chan error, 1)
		go func() {
			_, err := q.PopContext(context.Background())
			done <- err
		}()
		time.Sleep(10 * time.Millisecond)
		q.Terminate()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, queue.ErrTerminated)
		case <-time.After(2 * time.Second):
			t.Fatal("PopContext did not return after Terminate")
		}
	})
}
