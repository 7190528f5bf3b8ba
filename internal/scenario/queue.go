package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/go-ctrlpool/internal/config"
	"github.com/randomizedcoder/go-ctrlpool/internal/queue"
	"github.com/randomizedcoder/go-ctrlpool/internal/tick"
)

// item is one value pushed by a producer: who pushed it and its sequence.
type item struct {
	producer int
	seq      int
}

// QueueReport summarises a RunQueue.
type QueueReport struct {
	Producers int
	Pushed    int
	Received  int
	Elapsed   time.Duration
}

// OpsPerSecond returns delivered items per second.
func (r QueueReport) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Received) / r.Elapsed.Seconds()
}

// RunQueue pushes cfg.Items values from each of cfg.Producers goroutines and
// pops them all on the calling goroutine. It fails if any item is lost,
// duplicated, or delivered out of its producer's order.
func RunQueue(ctx context.Context, cfg config.Queue, log zerolog.Logger) (QueueReport, error) {
	q := queue.NewAtomicQueue[item]()
	total := cfg.Producers * cfg.Items
	report := QueueReport{Producers: cfg.Producers}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < cfg.Producers; p++ {
		g.Go(func() error {
			for i := 0; i < cfg.Items; i++ {
				if i%1024 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				if !q.Push(item{producer: p, seq: i}) {
					return queue.ErrTerminated
				}
			}
			return nil
		})
	}

	// Unblock the consumer if a producer fails or ctx ends.
	stop := context.AfterFunc(gctx, q.Terminate)
	defer stop()

	progress := tick.NewTicker(tick.DefaultInterval)
	defer progress.Stop()

	next := make([]int, cfg.Producers)
	for report.Received < total {
		if progress.Tick() {
			log.Debug().Int("received", report.Received).Int("pending", q.Len()).Msg("queue progress")
		}
		it, ok := q.Pop()
		if !ok {
			break
		}
		if it.seq != next[it.producer] {
			q.Terminate()
			_ = g.Wait()
			return report, fmt.Errorf("producer %d: got item %d, want %d", it.producer, it.seq, next[it.producer])
		}
		next[it.producer]++
		report.Received++
	}
	report.Elapsed = time.Since(start)

	if err := g.Wait(); err != nil {
		return report, fmt.Errorf("producers failed: %w", err)
	}
	for _, n := range next {
		report.Pushed += n
	}
	if report.Received != total {
		return report, fmt.Errorf("received %d of %d items", report.Received, total)
	}

	log.Debug().
		Int("producers", cfg.Producers).
		Int("items", total).
		Dur("elapsed", report.Elapsed).
		Msg("queue run complete")
	return report, nil
}
