package report

import (
	"fmt"

	"github.com/corpoml/demandml/metrics"
	"github.com/corpoml/demandml/pkg/errors"
)

const (
	rule49  = "*************************************************"
	dash49  = "*------------------------------------------------"
	rule60  = "************************************************************"
	dash60  = "*-----------------------------------------------------------"
	rule109 = "*************************************************************************************************************"
	dash109 = "*------------------------------------------------------------------------------------------------------------"
)

func mustNotNil[T any](m *T, kind string) {
	if m == nil {
		panic(errors.AssertionFailedf("%s metrics must not be nil", kind))
	}
}

// PredictionReport renders a single predicted value.
func PredictionReport(prediction string) []string {
	return []string{
		rule49,
		fmt.Sprintf("Predicted : %s", prediction),
		rule49,
	}
}

// PredictionVersusObservedReport renders a prediction next to the observed value.
func PredictionVersusObservedReport(predicted, observed string) []string {
	line := "-------------------------------------------------"
	return []string{
		line,
		fmt.Sprintf("Predicted : %s", predicted),
		fmt.Sprintf("Actual:     %s", observed),
		line,
	}
}

// RegressionReport renders single-run regression metrics.
func RegressionReport(name string, m *metrics.RegressionMetrics) []string {
	mustNotNil(m, "regression")
	return []string{
		rule49,
		fmt.Sprintf("*       Metrics for %s regression model", name),
		dash49,
		fmt.Sprintf("*       LossFn:        %s", fixed(m.LossFunction, 2)),
		fmt.Sprintf("*       R2 Score:      %s", fixed(m.RSquared, 2)),
		fmt.Sprintf("*       Absolute loss: %s", optional(m.MeanAbsoluteError, 2)),
		fmt.Sprintf("*       Squared loss:  %s", optional(m.MeanSquaredError, 2)),
		fmt.Sprintf("*       RMS loss:      %s", optional(m.RootMeanSquaredError, 2)),
		rule49,
	}
}

// BinaryClassificationReport renders calibrated binary classifier metrics.
func BinaryClassificationReport(name string, m *metrics.BinaryClassificationMetrics) []string {
	mustNotNil(m, "binary classification")
	return []string{
		rule60,
		fmt.Sprintf("*       Metrics for %s binary classification model", name),
		dash60,
		fmt.Sprintf("*       Accuracy: %s", percent(m.Accuracy)),
		fmt.Sprintf("*       Area Under Curve:      %s", percent(m.AreaUnderRocCurve)),
		fmt.Sprintf("*       Area under Precision recall Curve:  %s", percent(m.AreaUnderPrecisionRecallCurve)),
		fmt.Sprintf("*       F1Score:  %s", percent(m.F1Score)),
		fmt.Sprintf("*       LogLoss:  %s", optional(m.LogLoss, 2)),
		fmt.Sprintf("*       LogLossReduction:  %s", optional(m.LogLossReduction, 2)),
		fmt.Sprintf("*       PositivePrecision:  %s", optional(m.PositivePrecision, 2)),
		fmt.Sprintf("*       PositiveRecall:  %s", optional(m.PositiveRecall, 2)),
		fmt.Sprintf("*       NegativePrecision:  %s", optional(m.NegativePrecision, 2)),
		fmt.Sprintf("*       NegativeRecall:  %s", percent(m.NegativeRecall)),
		rule60,
	}
}

// AnomalyDetectionReport renders anomaly detection metrics.
func AnomalyDetectionReport(name string, m *metrics.AnomalyDetectionMetrics) []string {
	mustNotNil(m, "anomaly detection")
	return []string{
		rule60,
		fmt.Sprintf("*       Metrics for %s anomaly detection model", name),
		dash60,
		fmt.Sprintf("*       Area Under ROC Curve:                       %s", percent(m.AreaUnderRocCurve)),
		fmt.Sprintf("*       Detection rate at false positive count: %s", plain(m.DetectionRateAtFalsePositiveCount)),
		rule60,
	}
}

// perClassShown is how many per-class log-losses the multi-class report lists.
const perClassShown = 3

// MulticlassClassificationReport renders multi-class classifier metrics,
// including the log-loss of the first three classes.
func MulticlassClassificationReport(name string, m *metrics.MulticlassClassificationMetrics) []string {
	mustNotNil(m, "multi-class classification")
	if len(m.PerClassLogLoss) < perClassShown {
		panic(errors.AssertionFailedf("multi-class report needs %d per-class log-losses, got %d",
			perClassShown, len(m.PerClassLogLoss)))
	}
	lines := []string{
		rule60,
		fmt.Sprintf("*    Metrics for %s multi-class classification model", name),
		dash60,
		fmt.Sprintf("    AccuracyMacro = %s, a value between 0 and 1, the closer to 1, the better", fixed(m.MacroAccuracy, 4)),
		fmt.Sprintf("    AccuracyMicro = %s, a value between 0 and 1, the closer to 1, the better", fixed(m.MicroAccuracy, 4)),
		fmt.Sprintf("    LogLoss = %s, the closer to 0, the better", fixed(m.LogLoss, 4)),
	}
	for i := 0; i < perClassShown; i++ {
		lines = append(lines, fmt.Sprintf("    LogLoss for class %d = %s, the closer to 0, the better", i+1, fixed(m.PerClassLogLoss[i], 4)))
	}
	return append(lines, rule60)
}

// ClusteringReport renders clustering metrics.
func ClusteringReport(name string, m *metrics.ClusteringMetrics) []string {
	mustNotNil(m, "clustering")
	return []string{
		rule49,
		fmt.Sprintf("*       Metrics for %s clustering model", name),
		dash49,
		fmt.Sprintf("*       Average Distance: %s", plain(m.AverageDistance)),
		fmt.Sprintf("*       Davies Bouldin Index is: %s", plain(m.DaviesBouldinIndex)),
		rule49,
	}
}

// PrintPrediction prints PredictionReport.
func (c *Console) PrintPrediction(prediction string) {
	c.WriteLines(CategoryPlain, PredictionReport(prediction))
}

// PrintPredictionVersusObserved prints PredictionVersusObservedReport.
func (c *Console) PrintPredictionVersusObserved(predicted, observed string) {
	c.WriteLines(CategoryPlain, PredictionVersusObservedReport(predicted, observed))
}

// PrintRegressionMetrics prints RegressionReport.
func (c *Console) PrintRegressionMetrics(name string, m *metrics.RegressionMetrics) {
	c.WriteLines(CategoryPlain, RegressionReport(name, m))
}

// PrintBinaryClassificationMetrics prints BinaryClassificationReport.
func (c *Console) PrintBinaryClassificationMetrics(name string, m *metrics.BinaryClassificationMetrics) {
	c.WriteLines(CategoryPlain, BinaryClassificationReport(name, m))
}

// PrintAnomalyDetectionMetrics prints AnomalyDetectionReport.
func (c *Console) PrintAnomalyDetectionMetrics(name string, m *metrics.AnomalyDetectionMetrics) {
	c.WriteLines(CategoryPlain, AnomalyDetectionReport(name, m))
}

// PrintMulticlassClassificationMetrics prints MulticlassClassificationReport.
func (c *Console) PrintMulticlassClassificationMetrics(name string, m *metrics.MulticlassClassificationMetrics) {
	c.WriteLines(CategoryPlain, MulticlassClassificationReport(name, m))
}

// PrintClusteringMetrics prints ClusteringReport.
func (c *Console) PrintClusteringMetrics(name string, m *metrics.ClusteringMetrics) {
	c.WriteLines(CategoryPlain, ClusteringReport(name, m))
}
