package main

import (
	"github.com/spf13/cobra"

	"synco/internal/control"
	"synco/internal/pidlock"
)

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop a running synco instance via its PID file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configOrDefault()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			return control.Stop(pidlock.New(cfg.PIDFile), logger)
		},
	}
}
