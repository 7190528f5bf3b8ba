package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/go-ctrlpool/internal/config"
	"github.com/randomizedcoder/go-ctrlpool/internal/scenario"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Run a batch of jobs on the thread pool, optionally terminating it early",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("workers") {
			cfg.Pool.Workers, _ = flags.GetInt("workers")
		}
		if flags.Changed("jobs") {
			cfg.Pool.Jobs, _ = flags.GetInt("jobs")
		}
		if flags.Changed("job-duration") {
			cfg.Pool.JobDuration, _ = flags.GetDuration("job-duration")
		}
		if flags.Changed("terminate-after") {
			cfg.Pool.TerminateAfter, _ = flags.GetDuration("terminate-after")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		report, err := scenario.RunPool(cmd.Context(), cfg.Pool, log)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ThreadPool: %d workers, %d jobs of %v\n", report.Workers, report.Submitted, cfg.Pool.JobDuration)
		fmt.Fprintln(out, "─────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Completed:   %d\n", report.Completed)
		fmt.Fprintf(out, "  Rejected:    %d (terminated before start)\n", report.Rejected)
		fmt.Fprintf(out, "  Aborted:     %d (stopped via pool context)\n", report.Aborted)
		fmt.Fprintf(out, "  Failed:      %d\n", report.Failed)
		fmt.Fprintf(out, "  Elapsed:     %v\n", report.Elapsed)
		return nil
	},
}

func init() {
	d := config.Default()
	poolCmd.Flags().Int("workers", d.Pool.Workers, "worker goroutines (0 = one per CPU)")
	poolCmd.Flags().Int("jobs", d.Pool.Jobs, "jobs to submit")
	poolCmd.Flags().Duration("job-duration", d.Pool.JobDuration, "time each job takes")
	poolCmd.Flags().Duration("terminate-after", d.Pool.TerminateAfter, "terminate the pool this long after submitting (0 = never)")
}
