package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/go-ctrlpool/internal/config"
	"github.com/randomizedcoder/go-ctrlpool/internal/scenario"
)

var bufferCmd = &cobra.Command{
	Use:   "buffer",
	Short: "Feed a slow consumer from a fixed-rate loop through a drop-oldest AtomicBuffer",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("capacity") {
			cfg.Buffer.Capacity, _ = flags.GetInt("capacity")
		}
		if flags.Changed("frequency") {
			cfg.Buffer.Frequency, _ = flags.GetFloat64("frequency")
		}
		if flags.Changed("duration") {
			cfg.Buffer.Duration, _ = flags.GetDuration("duration")
		}
		if flags.Changed("consumer-delay") {
			cfg.Buffer.ConsumerDelay, _ = flags.GetDuration("consumer-delay")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "AtomicBuffer: capacity=%d, loop=%.0f Hz for %v, consumer delay=%v\n",
			cfg.Buffer.Capacity, cfg.Buffer.Frequency, cfg.Buffer.Duration, cfg.Buffer.ConsumerDelay)
		fmt.Fprintln(out, "─────────────────────────────────────────────────")

		report, err := scenario.RunBuffer(cmd.Context(), cfg.Buffer, log)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "  Loop rate:   %.1f Hz (target %.1f Hz)\n", report.LoopHz, report.TargetHz)
		fmt.Fprintf(out, "  Pushed:      %d\n", report.Pushed)
		fmt.Fprintf(out, "  Consumed:    %d (newest seen: #%d)\n", report.Consumed, report.LastSeq)
		fmt.Fprintf(out, "  Dropped:     %d (oldest first)\n", report.Dropped)
		fmt.Fprintf(out, "  Leftover:    %d\n", report.Leftover)
		fmt.Fprintf(out, "  Max age:     %v\n", report.MaxAge)
		return nil
	},
}

func init() {
	d := config.Default()
	bufferCmd.Flags().Int("capacity", d.Buffer.Capacity, "buffer capacity")
	bufferCmd.Flags().Float64("frequency", d.Buffer.Frequency, "producer loop frequency in Hz")
	bufferCmd.Flags().Duration("duration", d.Buffer.Duration, "how long the producer loop runs")
	bufferCmd.Flags().Duration("consumer-delay", d.Buffer.ConsumerDelay, "time the consumer spends per sample")
}
