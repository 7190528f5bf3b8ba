package tick

import (
	"context"
	"time"
)

// Timer paces a control loop at a fixed frequency.
//
// The schedule starts on the first Sleep or Tick, which returns immediately,
// or on Reset, which puts the first deadline one interval out.
// Each later call waits for the next deadline, then moves the deadline one
// interval forward. A Timer is not safe for concurrent use.
type Timer struct {
	interval time.Duration
	start    time.Time // first iteration
	next     time.Time // deadline of the next iteration
	last     time.Time // when the latest iteration was released
	iters    uint64
	started  bool
}

var _ Ticker = (*Timer)(nil)

// NewTimer creates a Timer running at frequency Hz.
// A non-positive frequency is replaced by DefaultFrequency.
func NewTimer(frequency float64) *Timer {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	return NewTimerInterval(time.Duration(float64(time.Second) / frequency))
}

// NewTimerInterval creates a Timer releasing one iteration per interval.
func NewTimerInterval(interval time.Duration) *Timer {
	if interval <= 0 {
		interval = time.Duration(float64(time.Second) / DefaultFrequency)
	}
	return &Timer{interval: interval}
}

// Sleep blocks until the next iteration is due.
func (t *Timer) Sleep() {
	now := time.Now()
	if wait := t.due(now); wait > 0 {
		time.Sleep(wait)
		now = time.Now()
	}
	t.advance(now)
}

// SleepContext is Sleep that returns ctx.Err() if ctx ends first.
// An interrupted wait does not consume the iteration.
func (t *Timer) SleepContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now()
	if wait := t.due(now); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case now = <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	t.advance(now)
	return nil
}

// Tick reports, without blocking, whether the next iteration is due, and
// consumes it if so. The first call always returns true.
func (t *Timer) Tick() bool {
	now := time.Now()
	if t.due(now) > 0 {
		return false
	}
	t.advance(now)
	return true
}

// due starts the schedule if needed and returns how long until the deadline.
func (t *Timer) due(now time.Time) time.Duration {
	if !t.started {
		t.start = now
		t.next = now
		t.last = now
		t.started = true
	}
	return t.next.Sub(now)
}

func (t *Timer) advance(now time.Time) {
	t.last = now
	t.next = t.next.Add(t.interval)
	t.iters++
}

// Reset restarts the schedule from now and clears the iteration count. The
// next deadline is one interval away.
func (t *Timer) Reset() {
	now := time.Now()
	t.started = true
	t.iters = 0
	t.start = now
	t.last = now
	t.next = now.Add(t.interval)
}

// Stop is a no-op for Timer (no resources to release).
func (t *Timer) Stop() {}

// Interval returns the loop period.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// Frequency returns the loop rate in Hz.
func (t *Timer) Frequency() float64 {
	return float64(time.Second) / float64(t.interval)
}

// NumIters returns the iterations released since the schedule started.
func (t *Timer) NumIters() uint64 {
	return t.iters
}

// Elapsed returns wall time from the first iteration to the latest one.
func (t *Timer) Elapsed() time.Duration {
	if !t.started {
		return 0
	}
	return t.last.Sub(t.start)
}

// SimTime returns scheduled time: the next deadline minus the start. For a
// loop that keeps up this runs one interval ahead of Elapsed.
func (t *Timer) SimTime() time.Duration {
	if !t.started {
		return 0
	}
	return t.next.Sub(t.start)
}

// AverageFrequency returns the achieved loop rate in Hz, or 0 before two
// iterations have been released.
func (t *Timer) AverageFrequency() float64 {
	elapsed := t.Elapsed()
	if t.iters < 2 || elapsed <= 0 {
		return 0
	}
	return float64(t.iters-1) / elapsed.Seconds()
}
