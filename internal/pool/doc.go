// Package pool runs submitted jobs on a fixed set of worker goroutines and
// delivers each result through a Future.
//
// Jobs are handed to workers through a queue.AtomicQueue. Each worker blocks
// in Pop while idle, runs one job at a time, and settles the job's Future
// with the returned value or error. A panicking job is recovered and reported
// through its Future as a *JobError wrapping a *PanicError; the worker keeps
// running.
//
// # Termination
//
// Terminate is pool-wide and irreversible. Jobs already running finish and
// settle normally. Every job that has been submitted but not started, and
// every job submitted afterwards, settles with ErrPoolTerminated without
// running. No Future is ever left unsettled.
//
// Close is Terminate followed by Wait, which joins every worker.
//
// # Errors
//
// The Future is the only place failures are reported. A caller that never
// reads a Future will never observe its error.
package pool
