package pool

import (
	"context"
	"sync/atomic"
)

// Future is the read side of a single-assignment result cell.
//
// It is settled exactly once, with a value or an error. All methods are safe
// for concurrent use, and Get may be called any number of times.
//
// The zero value is not usable; Futures come from Submit.
type Future[T any] struct {
	done    chan struct{}
	settled atomic.Bool
	value   T
	err     error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// settle writes the result. Only the first call has an effect; it returns
// false for every later call.
func (f *Future[T]) settle(value T, err error) bool {
	if !f.settled.CompareAndSwap(false, true) {
		return false
	}
	f.value = value
	f.err = err
	close(f.done)
	return true
}

func (f *Future[T]) resolve(value T) bool {
	return f.settle(value, nil)
}

func (f *Future[T]) reject(err error) bool {
	var zero T
	return f.settle(zero, err)
}

// Done returns a channel closed once the Future is settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the Future is settled, without blocking.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get blocks until the Future is settled and returns its result.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// GetContext is Get bounded by ctx. A ctx error does not settle the Future.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
