package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corpoml/demandml/core/pipeline"
	"github.com/corpoml/demandml/dataset"
	"github.com/corpoml/demandml/history"
	"github.com/corpoml/demandml/linear"
	"github.com/corpoml/demandml/metrics"
	"github.com/corpoml/demandml/model_selection"
	"github.com/corpoml/demandml/pkg/errors"
	"github.com/corpoml/demandml/pkg/log"
	"github.com/corpoml/demandml/preprocessing"
	"github.com/corpoml/demandml/report"
)

func newTrainCmd(a *app) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Cross-validate, fit and save the demand model",
		Long: `Train loads the product history CSV, prints a preview of the data, runs
k-fold cross-validation and prints the fold-averaged regression metrics. The
model is then fitted on all rows and saved.

Optionally the averages are exported as Markdown, one metric is charted per
fold and the run is recorded in a SQLite history database.`,
		Example: `  demandml train --data products.csv --model demand.gob
  demandml train --data products.csv --folds 10 --markdown report.md --chart mae.svg
  demandml train --data products.csv --history runs.db --wait`,
		Args: cobra.NoArgs,
	}

	flags := cmd.Flags()
	flags.String("data", "", "Path to the product history CSV")
	flags.String("model", "", "Path the fitted model is written to")
	flags.Int("folds", 0, "Number of cross-validation folds")
	flags.Uint64("seed", 0, "Seed for the fold shuffle")
	flags.Float64("alpha", 0, "Ridge penalty of the regressor")
	flags.String("markdown", "", "Write the fold-average report as Markdown to this file")
	flags.String("chart", "", "Write a per-fold chart to this file (.png, .svg, .pdf)")
	flags.String("history", "", "Record the run in this SQLite database")
	flags.BoolVar(&wait, "wait", false, "Wait for a keypress before exiting")

	cmd.RunE = a.run("train", func(cmd *cobra.Command, _ []string) error {
		a.applyTrainFlags(cmd)
		if err := a.cfg.Validate(); err != nil {
			return err
		}
		if err := a.train(cmd.Context()); err != nil {
			return err
		}
		if wait {
			a.console.PressAnyKey()
		}
		return nil
	})

	return cmd
}

// applyTrainFlags copies explicitly set flags over the configuration.
func (a *app) applyTrainFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		a.cfg.Data.Path, _ = flags.GetString("data")
	}
	if flags.Changed("model") {
		a.cfg.Model.Path, _ = flags.GetString("model")
	}
	if flags.Changed("folds") {
		a.cfg.Data.Folds, _ = flags.GetInt("folds")
	}
	if flags.Changed("seed") {
		a.cfg.Data.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("alpha") {
		a.cfg.Model.Alpha, _ = flags.GetFloat64("alpha")
	}
	if flags.Changed("markdown") {
		a.cfg.Report.Markdown, _ = flags.GetString("markdown")
	}
	if flags.Changed("chart") {
		a.cfg.Report.Chart, _ = flags.GetString("chart")
	}
	if flags.Changed("history") {
		a.cfg.History.Path, _ = flags.GetString("history")
	}
}

func (a *app) newPipeline() *pipeline.Pipeline {
	return pipeline.New(linear.NewRegression(
		linear.WithAlpha(a.cfg.Model.Alpha),
		linear.WithClampNegative(a.cfg.Model.ClampNegative),
	))
}

func (a *app) train(ctx context.Context) error {
	cfg := a.cfg
	if cfg.Data.Path == "" {
		return errors.NewValidationError("data.path", "training data is required", cfg.Data.Path)
	}

	products, err := dataset.LoadCSV(cfg.Data.Path)
	if err != nil {
		return errors.Wrap(err, "load training data")
	}
	a.logger.Info("training data loaded", log.PathKey, cfg.Data.Path, log.SamplesKey, len(products))

	view := dataset.NewProductView(products)
	a.console.ShowDataView(view, cfg.Report.PreviewRows)
	if err := a.console.PeekFrame(view, preprocessing.NewFeaturizer(), cfg.Report.PreviewRows); err != nil {
		return err
	}
	if err := a.console.PeekVectorColumn(view, preprocessing.NewFeaturizer(), preprocessing.ColFeatures, cfg.Report.PreviewRows); err != nil {
		return err
	}

	trainer := a.newPipeline()
	splitter := model_selection.NewKFold(cfg.Data.Folds, cfg.Data.Shuffle, cfg.Data.Seed)
	a.console.Header("=============== Cross-validating to get model's accuracy metrics ===============")
	folds, err := model_selection.CrossValidateRegression(ctx, products, func() model_selection.Estimator {
		return a.newPipeline()
	}, splitter)
	if err != nil {
		return errors.Wrap(err, "cross-validate")
	}
	if err := a.console.PrintRegressionFoldsAverageMetrics(trainer.String(), folds); err != nil {
		return err
	}

	summaries, err := report.SummarizeFolds(folds, metrics.RegressionFields)
	if err != nil {
		return err
	}
	if err := a.export(trainer.String(), summaries); err != nil {
		return err
	}

	a.console.Header("=============== Training the model ===============")
	if err := trainer.Fit(products); err != nil {
		return errors.Wrap(err, "fit model")
	}
	if err := trainer.Save(cfg.Model.Path); err != nil {
		return errors.Wrap(err, "save model")
	}
	a.console.Section(fmt.Sprintf("The model is saved to %s", cfg.Model.Path))
	a.logger.Info("model saved", log.ModelNameKey, trainer.String(), log.PathKey, cfg.Model.Path)

	if cfg.History.Path == "" {
		return nil
	}
	return a.record(ctx, trainer.String(), len(folds), summaries)
}

// export writes the optional Markdown report and per-fold chart.
func (a *app) export(algorithm string, summaries []report.FieldSummary) error {
	cfg := a.cfg.Report
	if cfg.Markdown != "" {
		if err := report.SaveFoldsMarkdown(cfg.Markdown, algorithm, summaries); err != nil {
			return errors.Wrap(err, "export markdown")
		}
		a.logger.Info("markdown report written", log.PathKey, cfg.Markdown)
	}
	if cfg.Chart != "" {
		s, ok := summaryByKey(summaries, cfg.ChartMetric)
		if !ok {
			return errors.NewValidationError("report.chart_metric", "unknown metric", cfg.ChartMetric)
		}
		if err := report.SaveFoldChart(cfg.Chart, algorithm, s); err != nil {
			return errors.Wrap(err, "export chart")
		}
		a.logger.Info("fold chart written", log.PathKey, cfg.Chart, log.MetricKey, s.Key)
	}
	return nil
}

func summaryByKey(summaries []report.FieldSummary, key string) (report.FieldSummary, bool) {
	for _, s := range summaries {
		if s.Key == key {
			return s, true
		}
	}
	return report.FieldSummary{}, false
}

// record stores the cross-validation run in the history database.
func (a *app) record(ctx context.Context, trainer string, folds int, summaries []report.FieldSummary) error {
	store, err := history.Open(a.cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	run := &history.Run{
		Trainer:  trainer,
		DataPath: a.cfg.Data.Path,
		Folds:    folds,
		Metrics:  make([]history.MetricSummary, 0, len(summaries)),
	}
	for _, s := range summaries {
		run.Metrics = append(run.Metrics, history.MetricSummary{
			Key:    s.Key,
			Label:  s.Label,
			Mean:   s.Aggregate.Mean,
			StdDev: s.Aggregate.StdDev,
			CI95:   s.Aggregate.CI95,
			Values: s.Values,
		})
	}
	id, err := store.SaveRun(ctx, run)
	if err != nil {
		return errors.Wrap(err, "record run")
	}
	a.logger.Info("run recorded", log.RunIDKey, id, log.PathKey, store.Path())
	return nil
}
