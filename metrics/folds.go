package metrics

// FoldResult is the evaluation result of one cross-validation fold.
type FoldResult[T any] struct {
	Fold    int `json:"fold"`
	Metrics T   `json:"metrics"`
}

// Field names one numeric field of a metric object.
type Field[T any] struct {
	Key   string
	Label string
	Get   func(T) float64
}

// RegressionFields lists the regression fields in report order.
var RegressionFields = []Field[RegressionMetrics]{
	{Key: "mean_absolute_error", Label: "L1 Loss", Get: func(m RegressionMetrics) float64 { return m.MeanAbsoluteError }},
	{Key: "mean_squared_error", Label: "L2 Loss", Get: func(m RegressionMetrics) float64 { return m.MeanSquaredError }},
	{Key: "root_mean_squared_error", Label: "RMS", Get: func(m RegressionMetrics) float64 { return m.RootMeanSquaredError }},
	{Key: "loss_function", Label: "Loss Function", Get: func(m RegressionMetrics) float64 { return m.LossFunction }},
	{Key: "r_squared", Label: "R-squared", Get: func(m RegressionMetrics) float64 { return m.RSquared }},
}

// MulticlassFields lists the multi-class fields aggregated across folds.
var MulticlassFields = []Field[MulticlassClassificationMetrics]{
	{Key: "micro_accuracy", Label: "MicroAccuracy", Get: func(m MulticlassClassificationMetrics) float64 { return m.MicroAccuracy }},
	{Key: "macro_accuracy", Label: "MacroAccuracy", Get: func(m MulticlassClassificationMetrics) float64 { return m.MacroAccuracy }},
	{Key: "log_loss", Label: "LogLoss", Get: func(m MulticlassClassificationMetrics) float64 { return m.LogLoss }},
	{Key: "log_loss_reduction", Label: "LogLossReduction", Get: func(m MulticlassClassificationMetrics) float64 { return m.LogLossReduction }},
}

// Values extracts one field from every fold, preserving fold order.
func Values[T any](folds []FoldResult[T], field Field[T]) []float64 {
	out := make([]float64, len(folds))
	for i, f := range folds {
		out[i] = field.Get(f.Metrics)
	}
	return out
}

// FieldByKey looks up a field by its key.
func FieldByKey[T any](fields []Field[T], key string) (Field[T], bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field[T]{}, false
}
