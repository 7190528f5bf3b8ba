package queue

import "context"

// minQueueSize is the initial storage of an AtomicQueue.
const minQueueSize = 16

// AtomicQueue is an unbounded blocking FIFO queue.
//
// Push never blocks; storage doubles when full. Any number of goroutines may
// push and pop concurrently. Items are delivered in the order their Push
// acquired the lock, each to exactly one consumer.
//
// The zero value is not usable; create one with NewAtomicQueue.
type AtomicQueue[T any] struct {
	c    cell
	ring ring[T]
}

var _ Queue[int] = (*AtomicQueue[int])(nil)

// NewAtomicQueue creates an empty AtomicQueue.
func NewAtomicQueue[T any]() *AtomicQueue[T] {
	q := &AtomicQueue[T]{ring: newRing[T](minQueueSize)}
	q.c.init()
	return q
}

// Push appends v to the tail and wakes one waiting consumer.
// Returns false if the queue is terminated.
func (q *AtomicQueue[T]) Push(v T) bool {
	q.c.mu.Lock()
	if q.c.terminated.Load() {
		q.c.mu.Unlock()
		return false
	}
	q.pushLocked(v)
	q.c.mu.Unlock()
	q.c.nonEmpty.Signal()
	return true
}

// Emplace appends the value built by newItem. newItem runs with the queue
// locked and must not call back into q.
func (q *AtomicQueue[T]) Emplace(newItem func() T) bool {
	q.c.mu.Lock()
	if q.c.terminated.Load() {
		q.c.mu.Unlock()
		return false
	}
	q.pushLocked(newItem())
	q.c.mu.Unlock()
	q.c.nonEmpty.Signal()
	return true
}

func (q *AtomicQueue[T]) pushLocked(v T) {
	if q.ring.full() {
		q.ring.grow()
	}
	q.ring.push(v)
}

// Pop blocks until an item is available or the queue is terminated.
func (q *AtomicQueue[T]) Pop() (T, bool) {
	return popWait(&q.c, &q.ring)
}

// PopInto pops into dst, leaving it untouched if the queue is terminated.
func (q *AtomicQueue[T]) PopInto(dst *T) bool {
	v, ok := popWait(&q.c, &q.ring)
	if ok {
		*dst = v
	}
	return ok
}

// PopContext pops, giving up with ctx.Err() when ctx is done first, or
// ErrTerminated when the queue is terminated.
func (q *AtomicQueue[T]) PopContext(ctx context.Context) (T, error) {
	return popContext(ctx, &q.c, &q.ring)
}

// TryPop pops without blocking.
func (q *AtomicQueue[T]) TryPop() (T, bool) {
	return tryPop(&q.c, &q.ring)
}

// Drain removes and returns all stored items, oldest first.
func (q *AtomicQueue[T]) Drain() []T {
	return drain(&q.c, &q.ring)
}

// Terminate wakes every blocked consumer and rejects further pushes.
func (q *AtomicQueue[T]) Terminate() {
	q.c.terminate()
}

// Terminated reports whether Terminate has been called.
func (q *AtomicQueue[T]) Terminated() bool {
	return q.c.terminated.Load()
}

// Len returns the number of stored items.
func (q *AtomicQueue[T]) Len() int {
	return length(&q.c, &q.ring)
}
