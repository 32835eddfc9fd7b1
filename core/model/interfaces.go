// Package model は推定器の共通部品（学習状態、インターフェース、永続化）を提供します。
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter は学習可能な回帰モデルのインターフェース
type Fitter interface {
	Fit(X mat.Matrix, y mat.Vector) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Regressor は交差検証で使う回帰モデルのインターフェース。
// String はレポートに表示するトレーナー名を返す。
type Regressor interface {
	Fitter
	Predictor
	IsFitted() bool
	String() string
}
