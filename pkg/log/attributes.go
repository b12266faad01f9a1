// Package log defines standard attribute keys for machine learning operations.
//
// These keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that log output from every estimator can be filtered
// the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "DecisionTreeClassifier", "AdaBoostClassifier"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "tree", "ensemble"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// TargetsKey indicates the number of target columns.
	TargetsKey = "data.targets"
)

// Performance and Training Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records accuracy for evaluation operations.
	AccuracyKey = "metrics.accuracy"

	// IterationKey records the boosting round.
	IterationKey = "training.iteration"

	// WeightedErrorKey records the weighted training error of a weak learner.
	WeightedErrorKey = "training.weighted_error"
)

// Tree Structure
const (
	// DepthKey records tree depth (edges from root to deepest leaf).
	DepthKey = "tree.depth"

	// LeavesKey records the number of leaves of a fitted tree.
	LeavesKey = "tree.leaves"

	// FeatureIndexKey records the feature used by a split.
	FeatureIndexKey = "split.feature"

	// ThresholdKey records the threshold used by a split.
	ThresholdKey = "split.threshold"

	// ImpurityKey records the impurity score of a split.
	ImpurityKey = "split.impurity"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
