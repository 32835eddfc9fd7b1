package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corpoml/demandml/history"
	"github.com/corpoml/demandml/pkg/errors"
	"github.com/corpoml/demandml/report"
)

const defaultHistoryLimit = 10

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded training runs",
		Long: `History lists the runs recorded by train --history, newest first. Given a
run id it prints the per-fold values of that run.`,
		Example: `  demandml history --history runs.db
  demandml history --history runs.db --limit 3
  demandml history --history runs.db 5f0c...`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.Flags().String("history", "", "Path of the SQLite history database")
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Maximum number of runs to list")

	cmd.RunE = a.run("history", func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("history") {
			a.cfg.History.Path, _ = cmd.Flags().GetString("history")
		}
		if a.cfg.History.Path == "" {
			return errors.NewValidationError("history.path", "history database is required", a.cfg.History.Path)
		}

		store, err := history.Open(a.cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 1 {
			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printRunDetail(run)
			return nil
		}

		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			a.console.Warning("No runs recorded in " + store.Path())
			return nil
		}
		for i := range runs {
			a.printRun(&runs[i])
		}
		return nil
	})

	return cmd
}

func runTitle(run *history.Run) string {
	return fmt.Sprintf("Run %s  %s  %s (%d folds)",
		run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04:05"), run.Trainer, run.Folds)
}

func (a *app) printRun(run *history.Run) {
	lines := []string{runTitle(run), "Data: " + run.DataPath}
	for _, m := range run.Metrics {
		lines = append(lines, fmt.Sprintf("  %-30s %.3f  (sd %.3f, ci95 %.3f)", m.Label, m.Mean, m.StdDev, m.CI95))
	}
	a.console.WriteLines(report.CategoryPlain, append([]string{""}, lines...))
}

func (a *app) printRunDetail(run *history.Run) {
	a.console.Section(runTitle(run))
	lines := []string{"Data: " + run.DataPath}
	for _, m := range run.Metrics {
		lines = append(lines, fmt.Sprintf("%s: mean %.3f, sd %.3f, ci95 %.3f", m.Label, m.Mean, m.StdDev, m.CI95))
		for i, v := range m.Values {
			lines = append(lines, fmt.Sprintf("  fold %d: %.3f", i+1, v))
		}
	}
	a.console.WriteLines(report.CategoryPlain, lines)
}
