package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"synco/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configOrDefault()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.HistoryDB)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			stats, err := store.Summary(cmd.Context())
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(stdout, "No sync runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				outcome := "ok"
				if run.ExitCode != 0 {
					outcome = "exit " + strconv.Itoa(run.ExitCode)
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					run.Local,
					run.Remote,
					run.Duration().Round(time.Second).String(),
					outcome,
				})
			}

			fmt.Fprintln(stdout, renderTable([]string{"Started", "Local", "Remote", "Duration", "Outcome"}, rows, 3))
			fmt.Fprintf(stdout, "%d runs recorded, %d failed\n", stats.Total, stats.Failed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}
