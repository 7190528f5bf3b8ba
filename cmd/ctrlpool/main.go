// Command ctrlpool exercises the queue, buffer and thread pool packages.
//
// Usage:
//
//	go run ./cmd/ctrlpool queue --producers 8 --items 1000000
//	go run ./cmd/ctrlpool buffer --capacity 8 --frequency 1000 --consumer-delay 5ms
//	go run ./cmd/ctrlpool pool --workers 0 --jobs 100 --terminate-after 20ms
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/randomizedcoder/go-ctrlpool/internal/config"
	"github.com/randomizedcoder/go-ctrlpool/internal/logging"
)

var (
	configFlag    string
	logLevelFlag  string
	logFormatFlag string

	// set by PersistentPreRunE
	cfg *config.Config
	log zerolog.Logger

	rootCmd = &cobra.Command{
		Use:           "ctrlpool",
		Short:         "Exercise the concurrent queue, ring buffer and thread pool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configFlag)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevelFlag
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Log.Format = logFormatFlag
			}
			log, err = logging.New(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}

			// A zero worker count means one per CPU; respect container quotas.
			if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
				log.Debug().Msgf(format, args...)
			})); err != nil {
				log.Warn().Err(err).Msg("failed to set GOMAXPROCS")
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "console", "log format (console, json)")

	rootCmd.AddCommand(queueCmd, bufferCmd, poolCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
