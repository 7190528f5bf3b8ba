package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolTerminated settles jobs that had not started when the pool was
	// terminated, and jobs submitted afterwards.
	ErrPoolTerminated = errors.New("pool: terminated before job started")

	// ErrNilJob is wrapped in a JobError when Submit is given a nil job.
	ErrNilJob = errors.New("pool: nil job")

	// ErrJobExited is wrapped in a JobError when a job calls runtime.Goexit.
	ErrJobExited = errors.New("pool: job exited without returning")
)

// JobError reports that a job ran and failed.
type JobError struct {
	Err error
}

func (e *JobError) Error() string {
	return "pool: job failed: " + e.Err.Error()
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// PanicError carries a value recovered from a panicking job.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
