package tick

import "time"

// StdTicker is a polled time.Ticker, used to rate-limit progress reports from
// a busy loop. Ticks missed while nobody polls are coalesced into one.
type StdTicker struct {
	ticker   *time.Ticker
	interval time.Duration
}

var _ Ticker = (*StdTicker)(nil)

// NewTicker creates a StdTicker with the specified interval.
// A non-positive interval is replaced by DefaultInterval.
func NewTicker(interval time.Duration) *StdTicker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &StdTicker{
		ticker:   time.NewTicker(interval),
		interval: interval,
	}
}

// Tick returns true if the interval has elapsed.
func (t *StdTicker) Tick() bool {
	select {
	case <-t.ticker.C:
		return true
	default:
		return false
	}
}

// Reset resets the ticker to start a new interval from now.
func (t *StdTicker) Reset() {
	t.ticker.Reset(t.interval)
}

// Stop stops the ticker and releases resources.
func (t *StdTicker) Stop() {
	t.ticker.Stop()
}

// Interval returns the ticker's interval.
func (t *StdTicker) Interval() time.Duration {
	return t.interval
}
