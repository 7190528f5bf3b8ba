package queue

import "context"

// AtomicBuffer is a fixed capacity blocking ring that drops the oldest item.
//
// When a push finds the buffer full, the oldest unread item is overwritten and
// the read cursor moves past it, so consumers always see the most recent
// Cap() items. This suits "latest sample wins" control loops, not reliable
// delivery. Push never blocks.
//
// The zero value is not usable; create one with NewAtomicBuffer.
type AtomicBuffer[T any] struct {
	c       cell
	ring    ring[T]
	dropped uint64 // guarded by c.mu
}

var _ Queue[int] = (*AtomicBuffer[int])(nil)

// NewAtomicBuffer creates an AtomicBuffer holding at most size items.
// It panics if size < 1.
func NewAtomicBuffer[T any](size int) *AtomicBuffer[T] {
	if size < 1 {
		panic("queue: AtomicBuffer size must be at least 1")
	}
	b := &AtomicBuffer[T]{ring: newRing[T](size)}
	b.c.init()
	return b
}

// Push writes v, overwriting the oldest unread item if the buffer is full.
// Returns false if the buffer is terminated.
func (b *AtomicBuffer[T]) Push(v T) bool {
	b.c.mu.Lock()
	if b.c.terminated.Load() {
		b.c.mu.Unlock()
		return false
	}
	b.pushLocked(v)
	b.c.mu.Unlock()
	b.c.nonEmpty.Signal()
	return true
}

// Emplace writes the value built by newItem. newItem runs with the buffer
// locked and must not call back into b.
func (b *AtomicBuffer[T]) Emplace(newItem func() T) bool {
	b.c.mu.Lock()
	if b.c.terminated.Load() {
		b.c.mu.Unlock()
		return false
	}
	b.pushLocked(newItem())
	b.c.mu.Unlock()
	b.c.nonEmpty.Signal()
	return true
}

func (b *AtomicBuffer[T]) pushLocked(v T) {
	if b.ring.full() {
		b.ring.pop()
		b.dropped++
	}
	b.ring.push(v)
}

// Pop blocks until an item is available or the buffer is terminated.
func (b *AtomicBuffer[T]) Pop() (T, bool) {
	return popWait(&b.c, &b.ring)
}

// PopInto pops into dst, leaving it untouched if the buffer is terminated.
func (b *AtomicBuffer[T]) PopInto(dst *T) bool {
	v, ok := popWait(&b.c, &b.ring)
	if ok {
		*dst = v
	}
	return ok
}

// PopContext pops, giving up with ctx.Err() when ctx is done first, or
// ErrTerminated when the buffer is terminated.
func (b *AtomicBuffer[T]) PopContext(ctx context.Context) (T, error) {
	return popContext(ctx, &b.c, &b.ring)
}

// TryPop pops without blocking.
func (b *AtomicBuffer[T]) TryPop() (T, bool) {
	return tryPop(&b.c, &b.ring)
}

// Drain removes and returns all unread items, oldest first.
func (b *AtomicBuffer[T]) Drain() []T {
	return drain(&b.c, &b.ring)
}

// Terminate wakes every blocked consumer and rejects further pushes.
func (b *AtomicBuffer[T]) Terminate() {
	b.c.terminate()
}

// Terminated reports whether Terminate has been called.
func (b *AtomicBuffer[T]) Terminated() bool {
	return b.c.terminated.Load()
}

// Len returns the number of unread items, in [0, Cap()].
func (b *AtomicBuffer[T]) Len() int {
	return length(&b.c, &b.ring)
}

// Cap returns the fixed capacity.
func (b *AtomicBuffer[T]) Cap() int {
	return len(b.ring.buf)
}

// Dropped returns how many items were overwritten before being read.
func (b *AtomicBuffer[T]) Dropped() uint64 {
	b.c.mu.Lock()
	defer b.c.mu.Unlock()
	return b.dropped
}
