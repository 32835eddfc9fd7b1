package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/corpoml/demandml/pkg/errors"
	"github.com/corpoml/demandml/report"
	"github.com/corpoml/demandml/stats"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <value> <value> [value...]",
		Short: "Aggregate per-fold metric values",
		Long: `Stats prints the mean, sample standard deviation and 95% confidence
interval of the given values, the same aggregation used for fold averages.`,
		Example: `  demandml stats 10 12 11 9 13 10.5`,
		Args:    cobra.MinimumNArgs(1),
		RunE: a.run("stats", func(_ *cobra.Command, args []string) error {
			values := make([]float64, len(args))
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return errors.NewValueError("stats", fmt.Sprintf("argument %d: %q is not a number", i+1, arg))
				}
				values[i] = v
			}

			agg, err := stats.Summarize(values)
			if err != nil {
				return err
			}
			a.console.WriteLines(report.CategoryPlain, []string{
				fmt.Sprintf("Values:                        %d", agg.N),
				fmt.Sprintf("Mean:                          %.3f", agg.Mean),
				fmt.Sprintf("Standard deviation:            %.3f", agg.StdDev),
				fmt.Sprintf("Confidence Interval 95%%:       %.3f", agg.CI95),
			})
			return nil
		}),
	}
}
