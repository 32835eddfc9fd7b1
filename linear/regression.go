// Package linear は需要予測に使うリッジ安定化最小二乗回帰を提供します。
package linear

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/corpoml/demandml/core/model"
	"github.com/corpoml/demandml/core/parallel"
	"github.com/corpoml/demandml/metrics"
	"github.com/corpoml/demandml/pkg/errors"
)

// Regression は切片付きの線形回帰モデル。
// 係数には Alpha の L2 ペナルティを課し、切片には課さない。
// フィールドは gob で保存できるよう全て公開している。
type Regression struct {
	model.BaseEstimator

	Coefficients  []float64 // 重み（係数）
	Intercept     float64   // 切片
	NFeatures     int       // 特徴量の数
	Alpha         float64   // L2 ペナルティ
	ClampNegative bool      // 負の予測値を 0 に丸めるか
}

// NewRegression は新しい回帰モデルを作成する
//
// 使用例:
//
//	reg := linear.NewRegression(linear.WithAlpha(0.5), linear.WithClampNegative(true))
//	err := reg.Fit(X, y)
//	pred, err := reg.Predict(XTest)
func NewRegression(opts ...Option) *Regression {
	r := &Regression{Alpha: DefaultAlpha}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// String はレポートに表示するトレーナー名を返す
func (r *Regression) String() string {
	return fmt.Sprintf("Ridge(alpha=%g)", r.Alpha)
}

// Fit はモデルを訓練データで学習させる。
// X と y を中心化し、(Xcᵀ Xc + αI) w = Xcᵀ yc をコレスキー分解で解く。
func (r *Regression) Fit(X mat.Matrix, y mat.Vector) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError("Regression.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != rows {
		return errors.NewDimensionError("Regression.Fit", rows, y.Len(), 0)
	}
	if r.Alpha < 0 {
		return errors.NewValueError("Regression.Fit", fmt.Sprintf("alpha must be non-negative, got %g", r.Alpha))
	}

	// 列ごとの平均
	means := make([]float64, cols)
	for j := 0; j < cols; j++ {
		means[j] = stat.Mean(mat.Col(nil, j, X), nil)
	}
	yData := make([]float64, rows)
	for i := range yData {
		yData[i] = y.AtVec(i)
	}
	yMean := stat.Mean(yData, nil)

	// 中心化した行列を作る。各チャンクは別々の行にだけ書き込む。
	Xc := mat.NewDense(rows, cols, nil)
	yc := mat.NewVecDense(rows, nil)
	err := parallel.ParallelizeWithThreshold(context.Background(), rows, parallel.DefaultThreshold,
		func(_ context.Context, start, end int) error {
			for i := start; i < end; i++ {
				for j := 0; j < cols; j++ {
					Xc.Set(i, j, X.At(i, j)-means[j])
				}
				yc.SetVec(i, yData[i]-yMean)
			}
			return nil
		})
	if err != nil {
		return err
	}

	// グラム行列 Xcᵀ Xc + αI
	gram := mat.NewSymDense(cols, nil)
	gram.SymOuterK(1, Xc.T())
	for j := 0; j < cols; j++ {
		gram.SetSym(j, j, gram.At(j, j)+r.Alpha)
	}

	var xty mat.VecDense
	xty.MulVec(Xc.T(), yc)

	var chol mat.Cholesky
	if ok := chol.Factorize(gram); !ok {
		return errors.NewModelError("Regression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}
	var w mat.VecDense
	if err := chol.SolveVecTo(&w, &xty); err != nil {
		return errors.NewModelError("Regression.Fit", "solve normal equations", err)
	}

	coef := make([]float64, cols)
	intercept := yMean
	for j := 0; j < cols; j++ {
		coef[j] = w.AtVec(j)
		intercept -= means[j] * coef[j]
	}
	if err := errors.CheckNumericalStability("Regression.Fit", coef); err != nil {
		return err
	}
	if err := errors.CheckScalar("Regression.Fit", intercept); err != nil {
		return err
	}

	r.Coefficients = coef
	r.Intercept = intercept
	r.NFeatures = cols
	r.SetFitted()
	return nil
}

// Predict は入力データに対する予測を行う
func (r *Regression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("Regression", "Predict")
	}
	rows, cols := X.Dims()
	if cols != r.NFeatures {
		return nil, errors.NewDimensionError("Regression.Predict", r.NFeatures, cols, 1)
	}

	pred := mat.NewVecDense(rows, nil)
	pred.MulVec(X, mat.NewVecDense(cols, r.Coefficients))
	for i := 0; i < rows; i++ {
		v := pred.AtVec(i) + r.Intercept
		if r.ClampNegative && v < 0 {
			v = 0
		}
		pred.SetVec(i, v)
	}
	return pred, nil
}

// Score はモデルの決定係数（R²）を計算する
func (r *Regression) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, pred)
}
