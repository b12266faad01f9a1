package tree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeboost/core/model"
	"github.com/YuminosukeSato/treeboost/metrics"
	"github.com/YuminosukeSato/treeboost/pkg/errors"
)

// DecisionTreeRegressor is a CART regressor supporting multiple outputs.
// Leaves predict the per-output mean of their training targets.
type DecisionTreeRegressor struct {
	state *model.StateManager
	params

	root                *Node
	nFeatures_          int
	nOutputs_           int
	featureImportances_ []float64
}

var (
	_ model.Regressor = (*DecisionTreeRegressor)(nil)
	_ model.TreeModel = (*DecisionTreeRegressor)(nil)
)

// NewDecisionTreeRegressor creates a regressor using variance reduction.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	dt := &DecisionTreeRegressor{
		state:  model.NewStateManager(),
		params: defaultParams(criterionSquaredError),
	}
	for _, opt := range opts {
		opt(&dt.params)
	}
	return dt
}

// Fit builds the tree from X (n_samples x n_features) and y (n_samples x n_outputs).
func (dt *DecisionTreeRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "DecisionTreeRegressor.Fit")

	if err := model.ValidateFitInput("DecisionTreeRegressor.Fit", X, y); err != nil {
		return err
	}
	if err := dt.params.validate(criterionSquaredError); err != nil {
		return err
	}

	nSamples, nFeatures := X.Dims()
	_, nOutputs := y.Dims()

	fitted, err := grow("DecisionTreeRegressor", X, y, varianceStrategy{}, dt.params)
	if err != nil {
		return err
	}

	dt.root = fitted.root
	dt.featureImportances_ = fitted.importances
	dt.nFeatures_ = nFeatures
	dt.nOutputs_ = nOutputs
	dt.state.SetDimensions(nFeatures, nSamples)
	dt.state.SetFitted()
	return nil
}

// Predict returns an n x n_outputs matrix of leaf means.
func (dt *DecisionTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := dt.checkPredict(X, "Predict"); err != nil {
		return nil, err
	}
	return predictValues(dt.root, X, dt.nOutputs_, dt.nJobs), nil
}

// Apply returns the ID of the leaf every row ends up in.
func (dt *DecisionTreeRegressor) Apply(X mat.Matrix) ([]int, error) {
	if err := dt.checkPredict(X, "Apply"); err != nil {
		return nil, err
	}
	return applyLeaves(dt.root, X, dt.nJobs), nil
}

// Score returns R², averaged uniformly over outputs.
func (dt *DecisionTreeRegressor) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := dt.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}

func (dt *DecisionTreeRegressor) checkPredict(X mat.Matrix, method string) error {
	if !dt.state.IsFitted() {
		return errors.NewNotFittedError("DecisionTreeRegressor", method)
	}
	return model.ValidatePredictInput("DecisionTreeRegressor."+method, X, dt.nFeatures_)
}

// Root returns the root of the fitted tree, or nil before Fit.
func (dt *DecisionTreeRegressor) Root() *Node {
	return dt.root
}

// GetDepth returns the number of edges on the longest root-to-leaf path.
func (dt *DecisionTreeRegressor) GetDepth() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.depth()
}

// GetNLeaves returns the number of leaves of the fitted tree.
func (dt *DecisionTreeRegressor) GetNLeaves() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.leaves()
}

// GetFeatureImportances returns the normalised variance decrease per feature.
func (dt *DecisionTreeRegressor) GetFeatureImportances() []float64 {
	return append([]float64(nil), dt.featureImportances_...)
}

// GetParams returns the hyperparameters.
func (dt *DecisionTreeRegressor) GetParams() map[string]interface{} {
	return dt.params.getParams()
}

// SetParams updates hyperparameters. The fitted tree, if any, is kept until the next Fit.
func (dt *DecisionTreeRegressor) SetParams(values map[string]interface{}) error {
	return dt.params.setParams(values)
}
