package cancel

import "sync/atomic"

// AtomicCanceler is a Canceler backed by an atomic.Bool.
//
// Done is a single atomic load, so workers can check it between every job.
type AtomicCanceler struct {
	done atomic.Bool
}

var _ Canceler = (*AtomicCanceler)(nil)

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done returns true if cancellation has been triggered.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel triggers cancellation, reporting whether this call did so.
func (a *AtomicCanceler) Cancel() bool {
	return a.done.CompareAndSwap(false, true)
}
