// Package model provides the estimator interfaces, fitted-state tracking and
// input validation shared by the tree and ensemble estimators.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns accuracy for classifiers and R^2 for regressors.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines interfaces for regression models.
type Regressor interface {
	Estimator
	Scorer
}

// Classifier combines interfaces for classification models.
type Classifier interface {
	Estimator
	Scorer

	// Classes returns the sorted class labels seen during fitting.
	Classes() []float64
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}

// ProbabilisticClassifier is a classifier that can report class probabilities.
type ProbabilisticClassifier interface {
	Classifier

	// PredictProba returns one column per class, in Classes() order.
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// DecisionFunctioner exposes the raw confidence score behind a prediction.
type DecisionFunctioner interface {
	// DecisionFunction returns an n_samples x 1 matrix of scores.
	DecisionFunction(X mat.Matrix) (mat.Matrix, error)
}

// TreeModel is implemented by estimators backed by a single fitted tree.
type TreeModel interface {
	// Apply returns the ID of the leaf each sample falls into.
	Apply(X mat.Matrix) ([]int, error)

	GetDepth() int
	GetNLeaves() int

	// GetFeatureImportances returns the normalised impurity decrease per feature.
	GetFeatureImportances() []float64
}
