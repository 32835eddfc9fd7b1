package metrics

import (
	"math"

	"github.com/corpoml/demandml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}

	return sum / float64(n), nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)

		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	// すべてのyTrueが同じ値の場合は定義できない
	if tss == 0 {
		return 0, errors.Wrap(errUndefinedR2, "R2Score")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

var errUndefinedR2 = errors.New("total sum of squares is zero (no variance in yTrue)")

// EvaluateRegression はテストデータ上の予測から回帰指標一式を計算する。
// LossFunction は既定の損失関数（二乗損失）の平均値で、MSE と一致する。
// ラベルに分散が無い場合、R² は 0 として UndefinedMetricWarning を発行する。
func EvaluateRegression(yTrue, yPred *mat.VecDense) (RegressionMetrics, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return RegressionMetrics{}, errors.Wrap(err, "EvaluateRegression")
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return RegressionMetrics{}, errors.Wrap(err, "EvaluateRegression")
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		if !errors.Is(err, errUndefinedR2) {
			return RegressionMetrics{}, errors.Wrap(err, "EvaluateRegression")
		}
		errors.Warn(errors.NewUndefinedMetricWarning("r_squared", "constant labels in evaluation set", 0))
		r2 = 0
	}

	return RegressionMetrics{
		LossFunction:         mse,
		RSquared:             r2,
		MeanAbsoluteError:    mae,
		MeanSquaredError:     mse,
		RootMeanSquaredError: math.Sqrt(mse),
	}, nil
}

// checkPair は入力ベクトルの長さを検証し、要素数を返す
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}
