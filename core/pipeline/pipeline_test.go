package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpoml/demandml/core/model"
	"github.com/corpoml/demandml/dataset"
	"github.com/corpoml/demandml/linear"
	"github.com/corpoml/demandml/pkg/errors"
)

// syntheticProducts builds n months for each product with next = units + 10.
func syntheticProducts(n int, ids ...string) []dataset.ProductData {
	var out []dataset.ProductData
	for k, id := range ids {
		for m := 0; m < n; m++ {
			units := float64(100*(k+1) + 7*m)
			out = append(out, dataset.ProductData{
				ProductID: id,
				Year:      2017,
				Month:     float64(m%12 + 1),
				Units:     units,
				Avg:       units / 10,
				Count:     10,
				Max:       units / 2,
				Min:       1,
				Prev:      units - 7,
				Next:      units + 10,
			})
		}
	}
	return out
}

func TestPipelineFitPredict(t *testing.T) {
	products := syntheticProducts(12, "263", "988")
	p := New(linear.NewRegression(linear.WithAlpha(1e-6)))
	require.NoError(t, p.Fit(products))

	for _, prod := range products[:3] {
		got, err := p.Predict(prod)
		require.NoError(t, err)
		assert.InDelta(t, prod.Next, got, 1e-2)
	}
	assert.Equal(t, "Ridge(alpha=1e-06)", p.String())
}

func TestPipelineNotFitted(t *testing.T) {
	p := New(linear.NewRegression())
	_, err := p.Predict(dataset.SampleProducts[0])
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	assert.Error(t, p.Save(filepath.Join(t.TempDir(), "m.gob")))
}

func TestPipelineSaveLoad(t *testing.T) {
	products := syntheticProducts(6, "1", "2", "3")
	p := New(linear.NewRegression(linear.WithClampNegative(true)))
	require.NoError(t, p.Fit(products))

	path := filepath.Join(t.TempDir(), "demand.gob")
	require.NoError(t, p.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Regression.ClampNegative)

	for _, prod := range append(products, dataset.SampleProducts...) {
		want, err := p.Predict(prod)
		require.NoError(t, err)
		got, err := loaded.Predict(prod)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(got))
		assert.InDelta(t, want, got, 1e-9, fmt.Sprintf("product %s", prod.ProductID))
	}
}

func TestLoadRejectsUnfittedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gob")
	require.NoError(t, model.SaveModel(&Pipeline{}, path))

	_, err := Load(path)
	var me *errors.ModelError
	assert.True(t, errors.As(err, &me))

	_, err = Load(filepath.Join(t.TempDir(), "missing.gob"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
