package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/go-ctrlpool/internal/config"
	"github.com/randomizedcoder/go-ctrlpool/internal/pool"
)

// PoolReport summarises a RunPool.
type PoolReport struct {
	Workers   int
	Submitted int
	Completed int
	Rejected  int // settled with ErrPoolTerminated, never ran
	Aborted   int // stopped early by the pool context
	Failed    int
	Elapsed   time.Duration
	Stats     pool.Stats
}

// RunPool submits cfg.Jobs jobs, each sleeping cfg.JobDuration (or until the
// pool is terminated), and waits for every Future. With cfg.TerminateAfter set
// the pool is terminated that long after the first submission.
//
// The run fails if any Future is still unsettled when ctx ends.
func RunPool(ctx context.Context, cfg config.Pool, log zerolog.Logger) (PoolReport, error) {
	p := pool.New[int](cfg.Workers, pool.WithLogger(log))
	defer p.Close()

	report := PoolReport{Workers: p.Workers()}
	start := time.Now()
	if cfg.TerminateAfter > 0 {
		t := time.AfterFunc(cfg.TerminateAfter, p.Terminate)
		defer t.Stop()
	}

	futures := make([]*pool.Future[int], cfg.Jobs)
	for i := range futures {
		futures[i] = p.Submit(func() (int, error) {
			if cfg.JobDuration > 0 {
				select {
				case <-time.After(cfg.JobDuration):
				case <-p.Context().Done():
					return 0, p.Context().Err()
				}
			}
			return i, nil
		})
	}
	report.Submitted = len(futures)

	// Collect results concurrently, bounded so a huge batch does not spawn a
	// goroutine per job.
	results := make([]error, len(futures))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.Workers()))
	for i, f := range futures {
		g.Go(func() error {
			v, err := f.GetContext(gctx)
			if gctx.Err() != nil && !f.Ready() {
				return fmt.Errorf("job %d never settled: %w", i, gctx.Err())
			}
			if err == nil && v != i {
				err = fmt.Errorf("job %d returned %d", i, v)
			}
			results[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	report.Elapsed = time.Since(start)

	for _, err := range results {
		switch {
		case err == nil:
			report.Completed++
		case errors.Is(err, pool.ErrPoolTerminated):
			report.Rejected++
		case errors.Is(err, context.Canceled):
			report.Aborted++
		default:
			report.Failed++
		}
	}
	report.Stats = p.Stats()

	log.Debug().
		Int("completed", report.Completed).
		Int("rejected", report.Rejected).
		Int("aborted", report.Aborted).
		Int("failed", report.Failed).
		Msg("pool run complete")
	return report, nil
}
