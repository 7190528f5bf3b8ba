package queue

import (
	"context"
	"sync"
	"sync/atomic"
)

// cell is the lock, wait condition and termination flag shared by both queues.
//
// terminated is only written while mu is held, so a consumer that checks it
// under mu and then waits on nonEmpty cannot miss the wake-up. The atomic lets
// Terminated() read it without taking the lock.
type cell struct {
	mu         sync.Mutex
	nonEmpty   sync.Cond // non-empty OR terminated
	terminated atomic.Bool
}

func (c *cell) init() {
	c.nonEmpty.L = &c.mu
}

func (c *cell) terminate() {
	c.mu.Lock()
	c.terminated.Store(true)
	c.mu.Unlock()
	c.nonEmpty.Broadcast()
}

// popWait blocks on c until r is non-empty or c is terminated.
// Termination wins over stored items.
func popWait[T any](c *cell, r *ring[T]) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for r.len() == 0 && !c.terminated.Load() {
		c.nonEmpty.Wait()
	}
	if c.terminated.Load() {
		var zero T
		return zero, false
	}
	return r.pop(), true
}

// popContext is popWait that also gives up when ctx is done.
//
// context.AfterFunc broadcasts under the lock, so a waiter that observed a
// live ctx before Wait is guaranteed to be woken by the cancellation.
func popContext[T any](ctx context.Context, c *cell, r *ring[T]) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.nonEmpty.Broadcast()
	})
	defer stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	for r.len() == 0 && !c.terminated.Load() && ctx.Err() == nil {
		c.nonEmpty.Wait()
	}
	switch {
	case c.terminated.Load():
		return zero, ErrTerminated
	case r.len() == 0:
		return zero, ctx.Err()
	}
	return r.pop(), nil
}

func tryPop[T any](c *cell, r *ring[T]) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.len() == 0 || c.terminated.Load() {
		var zero T
		return zero, false
	}
	return r.pop(), true
}

func drain[T any](c *cell, r *ring[T]) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return r.drain()
}

func length[T any](c *cell, r *ring[T]) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return r.len()
}
