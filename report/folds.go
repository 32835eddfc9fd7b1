package report

import (
	"fmt"

	"github.com/corpoml/demandml/metrics"
	"github.com/corpoml/demandml/pkg/errors"
	"github.com/corpoml/demandml/stats"
)

// FieldSummary is the aggregate of one metric field across folds.
type FieldSummary struct {
	Key       string
	Label     string
	Values    []float64
	Aggregate stats.Aggregate
}

// SummarizeFolds aggregates every field across folds, in field order.
// It fails with a domain error when fewer than two folds are given.
func SummarizeFolds[T any](folds []metrics.FoldResult[T], fields []metrics.Field[T]) ([]FieldSummary, error) {
	out := make([]FieldSummary, 0, len(fields))
	for _, f := range fields {
		values := metrics.Values(folds, f)
		agg, err := stats.Summarize(values)
		if err != nil {
			return nil, errors.Wrapf(err, "summarize %s", f.Key)
		}
		out = append(out, FieldSummary{Key: f.Key, Label: f.Label, Values: values, Aggregate: agg})
	}
	return out, nil
}

func foldsAverageLines(title string, summaries []FieldSummary) []string {
	labels := make([]string, len(summaries))
	width := 0
	for i, s := range summaries {
		labels[i] = "Average " + s.Label + ":"
		if len(labels[i]) > width {
			width = len(labels[i])
		}
	}

	lines := []string{rule109, title, dash109}
	for i, s := range summaries {
		lines = append(lines, fmt.Sprintf("*       %-*s %s  - Standard deviation: (%s)  - Confidence Interval 95%%: (%s)",
			width, labels[i],
			fixed(s.Aggregate.Mean, 3),
			fixed(s.Aggregate.StdDev, 3),
			fixed(s.Aggregate.CI95, 3)))
	}
	return append(lines, rule109)
}

// RegressionFoldsAverageReport renders the mean, standard deviation and 95%
// confidence interval of every regression field across folds.
func RegressionFoldsAverageReport(algorithm string, folds []metrics.FoldResult[metrics.RegressionMetrics]) ([]string, error) {
	summaries, err := SummarizeFolds(folds, metrics.RegressionFields)
	if err != nil {
		return nil, err
	}
	return foldsAverageLines(fmt.Sprintf("*       Metrics for %s Regression model", algorithm), summaries), nil
}

// MulticlassFoldsAverageReport renders fold-averaged multi-class metrics.
func MulticlassFoldsAverageReport(algorithm string, folds []metrics.FoldResult[metrics.MulticlassClassificationMetrics]) ([]string, error) {
	summaries, err := SummarizeFolds(folds, metrics.MulticlassFields)
	if err != nil {
		return nil, err
	}
	return foldsAverageLines(fmt.Sprintf("*       Metrics for %s Multi-class Classification model", algorithm), summaries), nil
}

// PrintRegressionFoldsAverageMetrics prints RegressionFoldsAverageReport.
func (c *Console) PrintRegressionFoldsAverageMetrics(algorithm string, folds []metrics.FoldResult[metrics.RegressionMetrics]) error {
	lines, err := RegressionFoldsAverageReport(algorithm, folds)
	if err != nil {
		return err
	}
	c.WriteLines(CategoryPlain, lines)
	return nil
}

// PrintMulticlassFoldsAverageMetrics prints MulticlassFoldsAverageReport.
func (c *Console) PrintMulticlassFoldsAverageMetrics(algorithm string, folds []metrics.FoldResult[metrics.MulticlassClassificationMetrics]) error {
	lines, err := MulticlassFoldsAverageReport(algorithm, folds)
	if err != nil {
		return err
	}
	c.WriteLines(CategoryPlain, lines)
	return nil
}
