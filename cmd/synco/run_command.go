package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"synco/internal/history"
	"synco/internal/pidlock"
	"synco/internal/rclone"
	"synco/internal/runloop"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var once bool
	var intervalSeconds int
	var noPIDFile bool
	var binary string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sync loop, or a single sync with --once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			store, err := history.Open(cfg.HistoryDB)
			if err != nil {
				logger.Warn("run history unavailable", slog.Any("error", err))
				store = nil
			} else {
				defer store.Close()
			}

			cli := rclone.NewCLI(rclone.WithBinary(binary))
			job := rclone.Job{
				Local:      cfg.Local,
				Remote:     cfg.Remote,
				BufferSize: cfg.BufferSize,
				LogLevel:   cfg.LogLevel,
				BWLimit:    cfg.BWLimit,
				ExtraFlags: cfg.ExtraFlags,
			}
			syncer := runloop.SyncFunc(func(runCtx context.Context) (int, error) {
				return cli.Sync(runCtx, job)
			})

			runner := runloop.New(cfg, pidlock.New(cfg.PIDFile), syncer, store, logger, runloop.Options{
				Interval:  time.Duration(intervalSeconds) * time.Second,
				Once:      once,
				NoPIDFile: noPIDFile,
			})

			if err := runner.Run(signalCtx); err != nil {
				if runloop.IsBenign(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "Another synco instance is already running. Exiting.")
					return nil
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single sync and exit")
	cmd.Flags().IntVarP(&intervalSeconds, "interval", "i", 60, "Interval between syncs in seconds")
	cmd.Flags().BoolVar(&noPIDFile, "no-pidfile", false, "Do not create the PID file (useful for debugging)")
	cmd.Flags().StringVar(&binary, "rclone", "", "Override the rclone binary path")

	return cmd
}
