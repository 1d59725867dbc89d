package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"synco/internal/control"
	"synco/internal/pidlock"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a synco instance is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configOrDefault()
			if err != nil {
				return err
			}

			status := control.Inspect(pidlock.New(cfg.PIDFile))
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			if status.Running {
				fmt.Fprintln(stdout, renderStatusLine("Synco", statusOK, "Running (pid "+strconv.Itoa(status.PID)+")", colorize))
			} else {
				fmt.Fprintln(stdout, renderStatusLine("Synco", statusWarn, "Not running", colorize))
			}
			fmt.Fprintln(stdout, renderStatusLine("PID file", statusInfo, status.PIDFile, colorize))
			if cfg.Local != "" && cfg.Remote != "" {
				fmt.Fprintln(stdout, renderStatusLine("Sync", statusInfo, cfg.Local+" -> "+cfg.Remote, colorize))
			}
			return nil
		},
	}
}
