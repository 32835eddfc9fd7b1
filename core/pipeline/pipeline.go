// Package pipeline ties featurisation and regression into one trainable,
// persistable demand model.
package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/corpoml/demandml/core/model"
	"github.com/corpoml/demandml/dataset"
	"github.com/corpoml/demandml/linear"
	"github.com/corpoml/demandml/pkg/errors"
	"github.com/corpoml/demandml/preprocessing"
)

// Pipeline featurises product rows and feeds them to a regression trainer.
type Pipeline struct {
	model.BaseEstimator

	Featurizer *preprocessing.Featurizer
	Regression *linear.Regression
}

// New returns an unfitted pipeline around reg.
func New(reg *linear.Regression) *Pipeline {
	return &Pipeline{
		Featurizer: preprocessing.NewFeaturizer(),
		Regression: reg,
	}
}

// String names the trainer for reports.
func (p *Pipeline) String() string {
	return p.Regression.String()
}

// Fit learns the featurisation on products, then trains the regression on
// the resulting features with next as label.
func (p *Pipeline) Fit(products []dataset.ProductData) error {
	fs, err := p.Featurizer.FitTransform(products)
	if err != nil {
		return errors.Wrap(err, "featurize")
	}
	if err := p.Regression.Fit(fs.X, fs.Y); err != nil {
		return errors.Wrapf(err, "train %s", p.Regression)
	}
	p.SetFitted()
	return nil
}

// PredictBatch predicts the next-month units of every product.
func (p *Pipeline) PredictBatch(products []dataset.ProductData) (*mat.VecDense, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}
	fs, err := p.Featurizer.Transform(products)
	if err != nil {
		return nil, err
	}
	return p.Regression.Predict(fs.X)
}

// Predict predicts the next-month units of a single product.
func (p *Pipeline) Predict(product dataset.ProductData) (float64, error) {
	pred, err := p.PredictBatch([]dataset.ProductData{product})
	if err != nil {
		return 0, err
	}
	return pred.AtVec(0), nil
}

// Save writes the fitted pipeline to path.
func (p *Pipeline) Save(path string) error {
	if !p.IsFitted() {
		return errors.NewNotFittedError("Pipeline", "Save")
	}
	return model.SaveModel(p, path)
}

// Load reads a pipeline saved with Save.
func Load(path string) (*Pipeline, error) {
	var p Pipeline
	if err := model.LoadModel(&p, path); err != nil {
		return nil, err
	}
	if !p.IsFitted() || p.Featurizer == nil || p.Regression == nil {
		return nil, errors.NewModelError("pipeline.Load", "incomplete model file", errors.Newf("%s holds no fitted pipeline", path))
	}
	return &p, nil
}
