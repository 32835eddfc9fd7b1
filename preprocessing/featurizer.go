// Package preprocessing は商品データを回帰モデルの特徴量行列に変換します。
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/corpoml/demandml/core/model"
	"github.com/corpoml/demandml/dataset"
	"github.com/corpoml/demandml/pkg/errors"
)

// 変換後のビューに追加される列
const (
	ColNumFeatures = "NumFeatures"
	ColCatFeatures = "CatFeatures"
	ColFeatures    = "Features"
	ColLabel       = "Label"
)

// FeatureSet は変換済みの学習データ
type FeatureSet struct {
	X     *mat.Dense    // n_samples × n_features
	Y     *mat.VecDense // ラベル（翌月の販売数）
	Names []string      // 列名
}

// Featurizer は数値列（NumFeatures）と商品IDのone-hot列（CatFeatures）を
// 連結して Features を作り、next 列を Label にする。
type Featurizer struct {
	model.BaseEstimator

	Encoder *OneHotEncoder
	Scaler  *StandardScaler
}

// NewFeaturizer は新しいFeaturizerを作成する
func NewFeaturizer() *Featurizer {
	return &Featurizer{
		Encoder: NewOneHotEncoder(),
		Scaler:  NewStandardScaler(),
	}
}

func numericMatrix(products []dataset.ProductData) *mat.Dense {
	X := mat.NewDense(len(products), len(dataset.NumericColumns), nil)
	for i, p := range products {
		X.SetRow(i, p.Numeric())
	}
	return X
}

func productIDs(products []dataset.ProductData) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ProductID
	}
	return ids
}

// Fit はone-hotのカテゴリと数値列の標準化パラメータを学習する
func (f *Featurizer) Fit(products []dataset.ProductData) error {
	if len(products) == 0 {
		return errors.NewModelError("Featurizer.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := f.Encoder.Fit(productIDs(products)); err != nil {
		return errors.Wrap(err, "fit product encoder")
	}
	if err := f.Scaler.Fit(numericMatrix(products)); err != nil {
		return errors.Wrap(err, "fit numeric scaler")
	}
	f.SetFitted()
	return nil
}

// NFeatures は Features 列の次元を返す
func (f *Featurizer) NFeatures() int {
	return len(dataset.NumericColumns) + len(f.Encoder.Categories)
}

// FeatureNames は Features 列の各次元の名前を返す
func (f *Featurizer) FeatureNames() []string {
	names := append([]string{}, dataset.NumericColumns...)
	for _, c := range f.Encoder.Categories {
		names = append(names, fmt.Sprintf("%s=%s", dataset.ColProductID, c))
	}
	return names
}

// Transform は products を特徴量行列とラベルに変換する
func (f *Featurizer) Transform(products []dataset.ProductData) (*FeatureSet, error) {
	if !f.IsFitted() {
		return nil, errors.NewNotFittedError("Featurizer", "Transform")
	}
	if len(products) == 0 {
		return nil, errors.NewModelError("Featurizer.Transform", "empty data", errors.ErrEmptyData)
	}

	num, err := f.Scaler.Transform(numericMatrix(products))
	if err != nil {
		return nil, err
	}
	cat, err := f.Encoder.Transform(productIDs(products))
	if err != nil {
		return nil, err
	}

	nNum := len(dataset.NumericColumns)
	X := mat.NewDense(len(products), f.NFeatures(), nil)
	X.Slice(0, len(products), 0, nNum).(*mat.Dense).Copy(num)
	if len(f.Encoder.Categories) > 0 {
		X.Slice(0, len(products), nNum, f.NFeatures()).(*mat.Dense).Copy(cat)
	}

	Y := mat.NewVecDense(len(products), nil)
	for i, p := range products {
		Y.SetVec(i, p.Next)
	}
	return &FeatureSet{X: X, Y: Y, Names: f.FeatureNames()}, nil
}

// FitTransform は学習と変換を同時に行う
func (f *Featurizer) FitTransform(products []dataset.ProductData) (*FeatureSet, error) {
	if err := f.Fit(products); err != nil {
		return nil, err
	}
	return f.Transform(products)
}

// TransformView は商品ビューに NumFeatures, CatFeatures, Features, Label の
// 列を追加したビューを返す。プレビュー用。
func (f *Featurizer) TransformView(view dataset.View) (dataset.View, error) {
	pv, ok := view.(*dataset.ProductView)
	if !ok {
		return nil, errors.NewValueError("Featurizer.TransformView", fmt.Sprintf("expected a product view, got %T", view))
	}
	fs, err := f.Transform(pv.Products)
	if err != nil {
		return nil, err
	}

	nNum := len(dataset.NumericColumns)
	columns := append(append([]string{}, dataset.Schema...), ColNumFeatures, ColCatFeatures, ColFeatures, ColLabel)
	out := dataset.NewFrame(columns...)
	for i, row := range pv.Preview(0) {
		values := make([]any, 0, len(columns))
		for _, cell := range row {
			values = append(values, cell.Value)
		}
		features := mat.Row(nil, i, fs.X)
		values = append(values, features[:nNum], features[nNum:], features, fs.Y.AtVec(i))
		if err := out.Append(values...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FitTransformView は Fit してから TransformView を返す
func (f *Featurizer) FitTransformView(view dataset.View) (dataset.View, error) {
	pv, ok := view.(*dataset.ProductView)
	if !ok {
		return nil, errors.NewValueError("Featurizer.FitTransformView", fmt.Sprintf("expected a product view, got %T", view))
	}
	if err := f.Fit(pv.Products); err != nil {
		return nil, err
	}
	return f.TransformView(view)
}
