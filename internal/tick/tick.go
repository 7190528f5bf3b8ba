// Package tick provides loop pacing and periodic triggers.
//
// This package offers two implementations of the Ticker interface:
//   - StdTicker: Standard library time.Ticker wrapper, for periodic reporting
//   - Timer: fixed-rate control-loop timer that sleeps until the next deadline
//
// Timer keeps an absolute schedule: deadlines advance by exactly one interval
// per iteration, so a loop that overruns catches up instead of drifting.
package tick

import "time"

// Ticker signals when a time interval has elapsed.
//
// Tick is meant to be polled by the one goroutine that owns the loop.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset restarts the schedule from now.
	Reset()

	// Stop releases any resources held by the ticker.
	// After Stop, the ticker should not be used.
	Stop()
}

// DefaultFrequency is the Timer loop rate used when none is given, in Hz.
const DefaultFrequency = 1000.0

// DefaultInterval is a reasonable reporting period.
const DefaultInterval = 100 * time.Millisecond
