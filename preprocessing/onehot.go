package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/corpoml/demandml/core/model"
	"github.com/corpoml/demandml/pkg/errors"
)

// OneHotEncoder はカテゴリ値を指示変数の列に変換する。
// 学習時に見なかったカテゴリは全て0の行になる。
type OneHotEncoder struct {
	model.BaseEstimator

	// Categories は学習したカテゴリ（昇順）。列の順序と一致する。
	Categories []string
}

// NewOneHotEncoder は新しいOneHotEncoderを作成する
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit はカテゴリの一覧を学習する
func (e *OneHotEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}
	seen := make(map[string]struct{}, len(values))
	cats := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cats = append(cats, v)
	}
	sort.Strings(cats)

	e.Categories = cats
	e.SetFitted()
	return nil
}

// lookup は Categories が昇順であることを前提に二分探索する
func (e *OneHotEncoder) lookup(v string) (int, bool) {
	i := sort.SearchStrings(e.Categories, v)
	return i, i < len(e.Categories) && e.Categories[i] == v
}

// Transform は values を len(values) × len(Categories) の指示行列に変換する
func (e *OneHotEncoder) Transform(values []string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(values) == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "empty data", errors.ErrEmptyData)
	}
	out := mat.NewDense(len(values), len(e.Categories), nil)
	for i, v := range values {
		if j, ok := e.lookup(v); ok {
			out.Set(i, j, 1)
		}
	}
	return out, nil
}

// FitTransform は学習と変換を同時に行う
func (e *OneHotEncoder) FitTransform(values []string) (*mat.Dense, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}
