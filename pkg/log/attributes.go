// Standard attribute keys for demandml log records.
//
// Keys follow a hierarchical naming convention ("model.name", "data.samples")
// so records can be filtered consistently.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the trainer, e.g. "Regression".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "evaluate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the lifecycle phase.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// PathKey is a file path read or written.
	PathKey = "data.path"
)

// Cross-validation and metrics
const (
	// FoldKey is the zero-based fold index.
	FoldKey = "cv.fold"

	// FoldsKey is the number of folds.
	FoldsKey = "cv.folds"

	// MetricKey names a metric field, e.g. "mean_absolute_error".
	MetricKey = "metrics.name"

	// LossKey records a loss value.
	LossKey = "metrics.loss"

	// R2ScoreKey records the R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Run bookkeeping
const (
	// RunIDKey identifies a stored evaluation run.
	RunIDKey = "run.id"

	// ErrorKey holds an error value.
	ErrorKey = "error"

	// StacktraceKey holds the stack trace extracted from an error.
	StacktraceKey = "stacktrace"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationEvaluate  = "evaluate"

	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
)
