package pool

import (
	"context"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/randomizedcoder/go-ctrlpool/internal/cancel"
	"github.com/randomizedcoder/go-ctrlpool/internal/queue"
)

// Job is a unit of work producing a T. A non-nil error fails the job's Future.
type Job[T any] func() (T, error)

// task pairs a job with the Future its submitter holds. Ownership moves from
// the submitter to exactly one worker (or to Terminate) through the queue.
type task[T any] struct {
	job    Job[T]
	future *Future[T]
}

// Pool executes jobs on a fixed set of worker goroutines.
//
// All methods are safe for concurrent use.
type Pool[T any] struct {
	jobs       *queue.AtomicQueue[task[T]]
	terminated *cancel.AtomicCanceler
	shutdown   *cancel.ContextCanceler
	workers    []*worker
	wg         sync.WaitGroup
	log        zerolog.Logger
	afterPop   func() // test hook between Pop and the terminated check

	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	rejected  atomic.Uint64
}

// Stats is a point-in-time snapshot of a Pool.
type Stats struct {
	Workers  int // goroutines started
	Idle     int // waiting for a job
	Running  int // executing a job
	Draining int // rejecting a job dequeued after Terminate
	Stopped  int // exited
	Pending  int // queued, not yet picked up

	Submitted uint64
	Completed uint64 // job returned a value
	Failed    uint64 // job returned an error, panicked, or was nil
	Rejected  uint64 // settled with ErrPoolTerminated
	Restarts  uint64 // workers replaced after a job called runtime.Goexit
}

// New starts a Pool with the given number of workers.
// If workers <= 0, runtime.GOMAXPROCS(0) workers are started.
func New[T any](workers int, opts ...Option) *Pool[T] {
	o := resolveOptions(opts)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool[T]{
		jobs:       queue.NewAtomicQueue[task[T]](),
		terminated: cancel.NewAtomic(),
		shutdown:   cancel.NewContext(context.Background()),
		workers:    make([]*worker, workers),
		log:        o.logger,
		afterPop:   o.afterPop,
	}
	for i := range p.workers {
		w := &worker{id: i}
		p.workers[i] = w
		p.wg.Add(1)
		go p.loop(w)
	}
	p.log.Debug().Int("workers", workers).Msg("pool started")
	return p
}

// Submit queues job and returns its Future without blocking.
//
// If the pool is already terminated the Future settles immediately with
// ErrPoolTerminated.
func (p *Pool[T]) Submit(job Job[T]) *Future[T] {
	f := newFuture[T]()
	p.submitted.Add(1)
	if job == nil {
		p.failed.Add(1)
		f.reject(&JobError{Err: ErrNilJob})
		return f
	}
	// A push that loses the race with Terminate is rejected by the queue,
	// so the job is settled here rather than stranded.
	if p.terminated.Done() || !p.jobs.Push(task[T]{job: job, future: f}) {
		p.reject(f)
	}
	return f
}

// SubmitFunc is Submit for jobs that cannot fail.
func (p *Pool[T]) SubmitFunc(fn func() T) *Future[T] {
	if fn == nil {
		return p.Submit(nil)
	}
	return p.Submit(func() (T, error) {
		return fn(), nil
	})
}

// Terminate stops the pool without waiting for workers.
//
// Running jobs complete normally. Queued jobs settle with ErrPoolTerminated.
// Safe to call multiple times.
func (p *Pool[T]) Terminate() {
	if !p.terminated.Cancel() {
		return
	}
	p.shutdown.Cancel()
	p.jobs.Terminate()

	drained := p.jobs.Drain()
	for _, t := range drained {
		p.reject(t.future)
	}
	p.log.Debug().Int("rejected", len(drained)).Msg("pool terminated")
}

// Terminated reports whether Terminate has been called.
func (p *Pool[T]) Terminated() bool {
	return p.terminated.Done()
}

// Wait blocks until every worker has exited. Workers only exit after
// Terminate, so Wait without Terminate blocks forever.
func (p *Pool[T]) Wait() {
	p.wg.Wait()
}

// Close terminates the pool and joins all workers.
func (p *Pool[T]) Close() {
	p.Terminate()
	p.Wait()
}

// Context returns a context cancelled by Terminate. Long-running jobs may
// watch it to stop early.
func (p *Pool[T]) Context() context.Context {
	return p.shutdown.Context()
}

// Workers returns the number of worker goroutines the pool started.
func (p *Pool[T]) Workers() int {
	return len(p.workers)
}

// WorkerStates returns the current state of each worker.
func (p *Pool[T]) WorkerStates() []WorkerState {
	states := make([]WorkerState, len(p.workers))
	for i, w := range p.workers {
		states[i] = w.State()
	}
	return states
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[T]) Stats() Stats {
	s := Stats{
		Workers:   len(p.workers),
		Pending:   p.jobs.Len(),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		Rejected:  p.rejected.Load(),
	}
	for _, w := range p.workers {
		s.Restarts += w.restarts.Load()
		switch w.State() {
		case WorkerIdle:
			s.Idle++
		case WorkerRunning:
			s.Running++
		case WorkerDraining:
			s.Draining++
		case WorkerStopped:
			s.Stopped++
		}
	}
	return s
}

func (p *Pool[T]) reject(f *Future[T]) {
	if f.reject(ErrPoolTerminated) {
		p.rejected.Add(1)
	}
}

// loop is the worker state machine: Idle until Pop yields a task, Draining if
// the pool was terminated meanwhile, otherwise Running.
//
// If a job ends the goroutine with runtime.Goexit while the pool is live, a
// new goroutine takes over w and its WaitGroup slot.
func (p *Pool[T]) loop(w *worker) {
	log := p.log.With().Int("worker", w.id).Logger()
	stopped := false
	defer func() {
		if !stopped && !p.terminated.Done() {
			log.Warn().Msg("job called runtime.Goexit, restarting worker")
			w.restarts.Add(1)
			w.setState(WorkerIdle)
			go p.loop(w)
			return
		}
		w.setState(WorkerStopped)
		p.wg.Done()
	}()

	for {
		w.setState(WorkerIdle)
		t, ok := p.jobs.Pop()
		if !ok {
			log.Debug().Uint64("jobs", w.jobs.Load()).Msg("worker stopped")
			stopped = true
			return
		}
		if p.afterPop != nil {
			p.afterPop()
		}
		if p.terminated.Done() {
			w.setState(WorkerDraining)
			p.reject(t.future)
			continue
		}
		w.setState(WorkerRunning)
		p.run(log, t)
		w.jobs.Add(1)
	}
}

// run executes one job and settles its Future on every exit path.
func (p *Pool[T]) run(log zerolog.Logger, t task[T]) {
	returned := false
	defer func() {
		if returned {
			return
		}
		var err error
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("job panicked")
			err = &PanicError{Value: r, Stack: debug.Stack()}
		} else {
			// runtime.Goexit: loop replaces this goroutine.
			err = ErrJobExited
		}
		p.failed.Add(1)
		t.future.reject(&JobError{Err: err})
	}()

	v, err := t.job()
	returned = true
	if err != nil {
		p.failed.Add(1)
		t.future.reject(&JobError{Err: err})
		return
	}
	p.completed.Add(1)
	t.future.resolve(v)
}
