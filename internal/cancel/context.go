package cancel

import (
	"context"
	"sync/atomic"
)

// ContextCanceler is a Canceler that also exposes a context.Context,
// for code that selects on ctx.Done() or passes the context down.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
	fired  atomic.Bool
}

var _ Canceler = (*ContextCanceler)(nil)

// NewContext creates a ContextCanceler whose context derives from parent.
// Cancelling parent also makes Done return true.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has been cancelled.
//
// This performs a non-blocking select on ctx.Done().
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel cancels the context, reporting whether this call did so.
func (c *ContextCanceler) Cancel() bool {
	if !c.fired.CompareAndSwap(false, true) {
		return false
	}
	c.cancel()
	return true
}

// Context returns the underlying context.Context.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}
