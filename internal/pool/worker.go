package pool

import "sync/atomic"

// WorkerState is the position of a worker in its loop.
type WorkerState int32

const (
	// WorkerIdle indicates the worker is blocked waiting for a job.
	WorkerIdle WorkerState = iota
	// WorkerRunning indicates the worker is executing a job.
	WorkerRunning
	// WorkerDraining indicates the worker is rejecting a job dequeued after
	// the pool was terminated.
	WorkerDraining
	// WorkerStopped indicates the worker goroutine has exited.
	WorkerStopped
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerRunning:
		return "running"
	case WorkerDraining:
		return "draining"
	case WorkerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type worker struct {
	id    int
	state atomic.Int32 // WorkerState
	jobs  atomic.Uint64

	restarts atomic.Uint64 // goroutines replaced after runtime.Goexit
}

func (w *worker) setState(s WorkerState) {
	w.state.Store(int32(s))
}

func (w *worker) State() WorkerState {
	return WorkerState(w.state.Load())
}
