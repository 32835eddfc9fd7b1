package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corpoml/demandml/core/pipeline"
	"github.com/corpoml/demandml/dataset"
	"github.com/corpoml/demandml/pkg/errors"
	"github.com/corpoml/demandml/pkg/log"
	"github.com/corpoml/demandml/report"
)

func newPredictCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Forecast next-month units with a saved model",
		Long: `Predict loads a model written by train and forecasts next-month units.

Without --data the two built-in sample products are scored; the first one has
a known next-month value that is printed next to the forecast.`,
		Example: `  demandml predict --model demand.gob
  demandml predict --model demand.gob --data latest.csv`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().String("model", "", "Path of the saved model")
	cmd.Flags().String("data", "", "Score every row of this CSV instead of the sample products")

	cmd.RunE = a.run("predict", func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("model") {
			a.cfg.Model.Path, _ = cmd.Flags().GetString("model")
		}
		model, err := pipeline.Load(a.cfg.Model.Path)
		if err != nil {
			return errors.Wrap(err, "load model")
		}
		a.logger.Debug("model loaded", log.ModelNameKey, model.String(), log.PathKey, a.cfg.Model.Path)

		products := dataset.SampleProducts
		observed := dataset.SampleHasObserved
		if path, _ := cmd.Flags().GetString("data"); path != "" {
			if products, err = dataset.LoadCSV(path); err != nil {
				return errors.Wrap(err, "load data")
			}
			observed = func(int) bool { return true }
		}
		return a.predict(model, products, observed)
	})

	return cmd
}

func (a *app) predict(model *pipeline.Pipeline, products []dataset.ProductData, observed func(int) bool) error {
	scores, err := model.PredictBatch(products)
	if err != nil {
		return errors.Wrap(err, "predict")
	}

	a.console.WriteLines(report.CategoryPlain, []string{"", "** Testing Product **"})
	for i, p := range products {
		score := scores.AtVec(i)
		line := fmt.Sprintf("Product: %s, month: %d, year: %d - ", p.ProductID, int(p.Month)+1, int(p.Year))
		if observed(i) {
			a.console.WriteLines(report.CategoryPlain, []string{fmt.Sprintf("%sReal value (units): %g, Forecast Prediction (units): %g", line, p.Next, score)})
			a.console.PrintPredictionVersusObserved(fmt.Sprintf("%g", score), fmt.Sprintf("%g", p.Next))
			continue
		}
		a.console.WriteLines(report.CategoryPlain, []string{fmt.Sprintf("%sForecast Prediction (units): %g", line, score)})
		a.console.PrintPrediction(fmt.Sprintf("%g", score))
	}
	return nil
}
