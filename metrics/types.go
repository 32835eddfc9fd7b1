// Package metrics computes regression metrics and defines the metric objects
// consumed by the report formatter, one struct per model category.
package metrics

// RegressionMetrics holds single-run regression evaluation results.
type RegressionMetrics struct {
	LossFunction         float64 `json:"loss_function"`
	RSquared             float64 `json:"r_squared"`
	MeanAbsoluteError    float64 `json:"mean_absolute_error"`
	MeanSquaredError     float64 `json:"mean_squared_error"`
	RootMeanSquaredError float64 `json:"root_mean_squared_error"`
}

// BinaryClassificationMetrics holds calibrated binary classifier results.
type BinaryClassificationMetrics struct {
	Accuracy                      float64 `json:"accuracy"`
	AreaUnderRocCurve             float64 `json:"area_under_roc_curve"`
	AreaUnderPrecisionRecallCurve float64 `json:"area_under_precision_recall_curve"`
	F1Score                       float64 `json:"f1_score"`
	LogLoss                       float64 `json:"log_loss"`
	LogLossReduction              float64 `json:"log_loss_reduction"`
	PositivePrecision             float64 `json:"positive_precision"`
	PositiveRecall                float64 `json:"positive_recall"`
	NegativePrecision             float64 `json:"negative_precision"`
	NegativeRecall                float64 `json:"negative_recall"`
}

// MulticlassClassificationMetrics holds multi-class classifier results.
// PerClassLogLoss is indexed by class.
type MulticlassClassificationMetrics struct {
	MacroAccuracy    float64   `json:"macro_accuracy"`
	MicroAccuracy    float64   `json:"micro_accuracy"`
	LogLoss          float64   `json:"log_loss"`
	LogLossReduction float64   `json:"log_loss_reduction"`
	PerClassLogLoss  []float64 `json:"per_class_log_loss"`
}

// ClusteringMetrics holds clustering results.
type ClusteringMetrics struct {
	AverageDistance    float64 `json:"average_distance"`
	DaviesBouldinIndex float64 `json:"davies_bouldin_index"`
}

// AnomalyDetectionMetrics holds anomaly detection results.
type AnomalyDetectionMetrics struct {
	AreaUnderRocCurve                 float64 `json:"area_under_roc_curve"`
	DetectionRateAtFalsePositiveCount float64 `json:"detection_rate_at_false_positive_count"`
}
