// Package queue provides blocking hand-off queues for producer/consumer goroutines.
//
// This package offers two implementations of the Queue interface:
//   - AtomicQueue: unbounded FIFO, grows as needed, never drops
//   - AtomicBuffer: fixed capacity ring, overwrites the oldest unread item when full
//
// # Termination
//
// Both queues move one way from active to terminated. Terminate wakes every
// goroutine blocked in Pop, and from then on Pop returns immediately without a
// value, even when items are still stored. Pushes after termination are
// rejected. Drain hands back whatever was left so an owner can account for it.
//
// # AtomicBuffer is lossy (IMPORTANT)
//
// AtomicBuffer favours the latest data over completeness. When a producer
// outruns the consumer the oldest unread item is discarded and Dropped is
// incremented. Use AtomicQueue where every item must be delivered.
package queue

import (
	"context"
	"errors"
)

// ErrTerminated is returned by PopContext once the queue has been terminated.
var ErrTerminated = errors.New("queue: terminated")

// Queue is a multi-producer multi-consumer blocking queue.
//
// All methods are safe for concurrent use.
type Queue[T any] interface {
	// Push adds an item to the tail and wakes one waiting consumer.
	// Returns false if the queue is terminated; the item is not stored.
	Push(T) bool

	// Emplace stores the result of newItem, which runs under the queue lock.
	// Returns false (without calling newItem) if the queue is terminated.
	Emplace(newItem func() T) bool

	// Pop blocks until an item is available or the queue is terminated.
	// Returns false on termination.
	Pop() (T, bool)

	// PopInto is Pop writing into dst. dst is left untouched on false.
	PopInto(dst *T) bool

	// PopContext is Pop bounded by ctx.
	PopContext(ctx context.Context) (T, error)

	// TryPop removes the head item without blocking.
	TryPop() (T, bool)

	// Drain removes and returns all stored items in FIFO order.
	Drain() []T

	// Terminate wakes all blocked consumers. Safe to call multiple times.
	Terminate()

	// Terminated reports whether Terminate has been called.
	Terminated() bool

	// Len returns the number of stored items.
	Len() int
}
