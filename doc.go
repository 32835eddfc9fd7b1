// Package demandml forecasts next-month product demand from monthly sales
// history and reports how well the forecast holds up under cross-validation.
//
// The module is organised as a set of small packages:
//
//   - stats: mean, sample standard deviation and 95% confidence interval of
//     per-fold metric values
//   - metrics: regression metrics and the metric records of every report kind
//   - report: console reports (metric blocks, fold averages, data previews)
//     plus Markdown and chart exports
//   - dataset, preprocessing, linear: loading, featurisation and the ridge
//     regressor
//   - model_selection: k-fold cross-validation
//   - core/pipeline: the fitted featuriser and regressor, saved with gob
//   - history: SQLite record of evaluation runs
//   - config: YAML and environment configuration
//
// The demandml command in cmd/demandml wires these together:
//
//	demandml train --data products.csv --model demand.gob
//	demandml predict --model demand.gob
//
// Aggregating per-fold values directly:
//
//	agg, err := stats.Summarize([]float64{10, 12, 11, 9, 13, 10.5})
//	if err != nil {
//	    // fewer than two values
//	}
//	fmt.Printf("%.3f ± %.3f\n", agg.Mean, agg.CI95)
package demandml
