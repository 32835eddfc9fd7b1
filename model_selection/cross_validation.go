package model_selection

import (
	"context"
	"runtime"
	"time"

	"gonum.org/v1/gonum/mat"
	"golang.org/x/sync/errgroup"

	"github.com/corpoml/demandml/dataset"
	"github.com/corpoml/demandml/metrics"
	"github.com/corpoml/demandml/pkg/errors"
	"github.com/corpoml/demandml/pkg/log"
)

// Estimator is a trainer over product rows. A fresh one is built per fold.
type Estimator interface {
	Fit(products []dataset.ProductData) error
	PredictBatch(products []dataset.ProductData) (*mat.VecDense, error)
	String() string
}

// EstimatorFactory builds an unfitted Estimator.
type EstimatorFactory func() Estimator

func subset(products []dataset.ProductData, indices []int) []dataset.ProductData {
	out := make([]dataset.ProductData, len(indices))
	for i, idx := range indices {
		out[i] = products[idx]
	}
	return out
}

// CrossValidateRegression trains a new estimator on every training split and
// evaluates it on the held-out split. Folds run concurrently; results come
// back in fold order, numbered from 1. The first failing fold cancels the
// rest.
func CrossValidateRegression(ctx context.Context, products []dataset.ProductData, newEstimator EstimatorFactory, splitter Splitter) ([]metrics.FoldResult[metrics.RegressionMetrics], error) {
	if len(products) == 0 {
		return nil, errors.NewModelError("CrossValidateRegression", "empty data", errors.ErrEmptyData)
	}
	folds, err := splitter.Split(len(products))
	if err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("model_selection").With(
		log.OperationKey, log.OperationEvaluate,
		log.FoldsKey, len(folds),
	)
	results := make([]metrics.FoldResult[metrics.RegressionMetrics], len(folds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, fold := range folds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()

			est := newEstimator()
			train := subset(products, fold.TrainIndices)
			test := subset(products, fold.TestIndices)
			if err := est.Fit(train); err != nil {
				return errors.Wrapf(err, "fold %d: fit", i+1)
			}
			pred, err := est.PredictBatch(test)
			if err != nil {
				return errors.Wrapf(err, "fold %d: predict", i+1)
			}

			yTrue := mat.NewVecDense(len(test), nil)
			for j, p := range test {
				yTrue.SetVec(j, p.Next)
			}
			m, err := metrics.EvaluateRegression(yTrue, pred)
			if err != nil {
				return errors.Wrapf(err, "fold %d: evaluate", i+1)
			}
			results[i] = metrics.FoldResult[metrics.RegressionMetrics]{Fold: i + 1, Metrics: m}

			logger.Debug("fold evaluated",
				log.ModelNameKey, est.String(),
				log.FoldKey, i+1,
				log.SamplesKey, len(train),
				log.LossKey, m.LossFunction,
				log.R2ScoreKey, m.RSquared,
				log.DurationMsKey, time.Since(start).Milliseconds(),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("cross-validation failed", err)
		return nil, err
	}
	return results, nil
}
