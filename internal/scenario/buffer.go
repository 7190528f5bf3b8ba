package scenario

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/randomizedcoder/go-ctrlpool/internal/config"
	"github.com/randomizedcoder/go-ctrlpool/internal/queue"
	"github.com/randomizedcoder/go-ctrlpool/internal/tick"
)

// Sample is one reading produced by the control loop.
type Sample struct {
	Seq uint64
	At  time.Time
}

// BufferReport summarises a RunBuffer.
//
// Every pushed sample is accounted for exactly once:
// Pushed == Consumed + Dropped + Leftover.
type BufferReport struct {
	Pushed   uint64
	Consumed uint64
	Dropped  uint64
	Leftover uint64 // unread when the run ended
	LastSeq  uint64 // newest sample the consumer saw

	MaxAge   time.Duration // worst sample age at consume time
	LoopHz   float64       // achieved producer frequency
	TargetHz float64
	Elapsed  time.Duration
}

// RunBuffer paces a producer with a tick.Timer at cfg.Frequency for
// cfg.Duration, pushing a Sample each iteration into an AtomicBuffer of
// cfg.Capacity. A consumer pops samples and spends cfg.ConsumerDelay on each.
// When the consumer is slower than the loop, the buffer drops the oldest
// samples and the consumer stays close to the newest data.
func RunBuffer(ctx context.Context, cfg config.Buffer, log zerolog.Logger) (BufferReport, error) {
	buf := queue.NewAtomicBuffer[Sample](cfg.Capacity)
	timer := tick.NewTimer(cfg.Frequency)
	report := BufferReport{TargetHz: timer.Frequency()}

	type consumed struct {
		n       uint64
		lastSeq uint64
		maxAge  time.Duration
	}
	done := make(chan consumed, 1)
	go func() {
		var c consumed
		for {
			s, ok := buf.Pop()
			if !ok {
				done <- c
				return
			}
			if age := time.Since(s.At); age > c.maxAge {
				c.maxAge = age
			}
			c.n++
			c.lastSeq = s.Seq
			if cfg.ConsumerDelay > 0 {
				time.Sleep(cfg.ConsumerDelay)
			}
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	start := time.Now()
	var err error
	for {
		if err = timer.SleepContext(runCtx); err != nil {
			break
		}
		report.Pushed++
		buf.Push(Sample{Seq: report.Pushed, At: time.Now()})
	}
	report.Elapsed = time.Since(start)
	report.LoopHz = timer.AverageFrequency()

	report.Leftover = uint64(len(buf.Drain()))
	buf.Terminate()
	c := <-done
	report.Consumed = c.n
	report.LastSeq = c.lastSeq
	report.MaxAge = c.maxAge
	report.Dropped = buf.Dropped()

	log.Debug().
		Uint64("pushed", report.Pushed).
		Uint64("consumed", report.Consumed).
		Uint64("dropped", report.Dropped).
		Float64("loop_hz", report.LoopHz).
		Msg("buffer run complete")

	// Running out the clock is the normal way to finish.
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return report, nil
	}
	return report, err
}
