// Package cancel provides one-way termination signals.
//
// This package offers two implementations of the Canceler interface:
//   - AtomicCanceler: a single atomic flag, cheap enough to check per job
//   - ContextCanceler: a context.Context that is cancelled on Cancel
//
// Both are irreversible: once cancelled they stay cancelled.
package cancel

// Canceler is a one-way termination signal.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done() and with itself
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. It returns true only for the call that
	// performed the transition; later calls are no-ops returning false.
	Cancel() bool
}
