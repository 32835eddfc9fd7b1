package linear

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/corpoml/demandml/core/model"
	"github.com/corpoml/demandml/pkg/errors"
)

func TestRegressionFitOrdinaryLeastSquares(t *testing.T) {
	// y = 2x + 1
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewVecDense(4, []float64{3, 5, 7, 9})

	reg := NewRegression(WithAlpha(0))
	require.NoError(t, reg.Fit(X, y))

	assert.True(t, reg.IsFitted())
	assert.InDelta(t, 2.0, reg.Coefficients[0], 1e-9)
	assert.InDelta(t, 1.0, reg.Intercept, 1e-9)

	pred, err := reg.Predict(mat.NewDense(2, 1, []float64{5, 6}))
	require.NoError(t, err)
	assert.InDelta(t, 11.0, pred.AtVec(0), 1e-9)
	assert.InDelta(t, 13.0, pred.AtVec(1), 1e-9)

	score, err := reg.Score(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestRegressionMultipleFeatures(t *testing.T) {
	X, y := createBenchmarkData(200, 3)

	reg := NewRegression(WithAlpha(0))
	require.NoError(t, reg.Fit(X, y))

	for j, want := range []float64{0.5, 1.0, 1.5} {
		assert.InDelta(t, want, reg.Coefficients[j], 0.02, "coefficient %d", j)
	}
	assert.InDelta(t, 1.0, reg.Intercept, 0.02)
}

func TestRegressionRidgeShrinks(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewVecDense(4, []float64{3, 5, 7, 9})

	ols := NewRegression(WithAlpha(0))
	ridge := NewRegression(WithAlpha(5))
	require.NoError(t, ols.Fit(X, y))
	require.NoError(t, ridge.Fit(X, y))

	// Σ(x-x̄)² = 5 なので係数は 2 * 5 / (5 + 5)
	assert.InDelta(t, 1.0, ridge.Coefficients[0], 1e-9)
	assert.Less(t, ridge.Coefficients[0], ols.Coefficients[0])
}

func TestRegressionHandlesConstantColumnWithPenalty(t *testing.T) {
	// 2列目は全て0（あるフォールドに現れないone-hot列）
	X := mat.NewDense(4, 2, []float64{1, 0, 2, 0, 3, 0, 4, 0})
	y := mat.NewVecDense(4, []float64{3, 5, 7, 9})

	require.NoError(t, NewRegression().Fit(X, y))

	err := NewRegression(WithAlpha(0)).Fit(X, y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSingularMatrix))
}

func TestRegressionClampNegative(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewVecDense(3, []float64{-1, 0, 1})

	reg := NewRegression(WithAlpha(0), WithClampNegative(true))
	require.NoError(t, reg.Fit(X, y))

	pred, err := reg.Predict(mat.NewDense(2, 1, []float64{0, 4}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, pred.AtVec(0))
	assert.InDelta(t, 2.0, pred.AtVec(1), 1e-9)
}

func TestRegressionErrors(t *testing.T) {
	t.Run("not fitted", func(t *testing.T) {
		_, err := NewRegression().Predict(mat.NewDense(1, 1, []float64{1}))
		var nf *errors.NotFittedError
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("row mismatch", func(t *testing.T) {
		err := NewRegression().Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewVecDense(3, nil))
		var dim *errors.DimensionError
		require.True(t, errors.As(err, &dim))
		assert.Equal(t, 0, dim.Axis)
	})

	t.Run("feature mismatch", func(t *testing.T) {
		reg := NewRegression()
		require.NoError(t, reg.Fit(mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewVecDense(3, []float64{1, 2, 3})))
		_, err := reg.Predict(mat.NewDense(1, 2, []float64{1, 2}))
		var dim *errors.DimensionError
		require.True(t, errors.As(err, &dim))
		assert.Equal(t, 1, dim.Axis)
	})

	t.Run("negative alpha", func(t *testing.T) {
		err := NewRegression(WithAlpha(-1)).Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewVecDense(2, []float64{1, 2}))
		var ve *errors.ValueError
		assert.True(t, errors.As(err, &ve))
	})
}

func TestRegressionString(t *testing.T) {
	assert.Equal(t, "Ridge(alpha=1)", NewRegression().String())
	assert.Equal(t, "Ridge(alpha=0.25)", NewRegression(WithAlpha(0.25)).String())
}

func TestRegressionGobRoundTrip(t *testing.T) {
	X, y := createBenchmarkData(50, 2)
	reg := NewRegression(WithClampNegative(true))
	require.NoError(t, reg.Fit(X, y))

	var buf bytes.Buffer
	require.NoError(t, model.SaveModelToWriter(reg, &buf))

	var loaded Regression
	require.NoError(t, model.LoadModelFromReader(&loaded, &buf))

	assert.True(t, loaded.IsFitted())
	assert.True(t, loaded.ClampNegative)

	want, err := reg.Predict(X)
	require.NoError(t, err)
	got, err := loaded.Predict(X)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(want, got, 1e-12))
}
