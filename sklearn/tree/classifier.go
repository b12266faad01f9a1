package tree

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeboost/core/model"
	"github.com/YuminosukeSato/treeboost/metrics"
	"github.com/YuminosukeSato/treeboost/pkg/errors"
)

// DecisionTreeClassifier is a CART classifier.
// Compatible with scikit-learn's DecisionTreeClassifier for the supported options.
//
// Labels are arbitrary float64 class codes in a single column; they are
// compared by equality and ordered ascending.
type DecisionTreeClassifier struct {
	state *model.StateManager
	params

	root                *Node
	classes_            []float64
	nClasses_           int
	nFeatures_          int
	featureImportances_ []float64
}

var (
	_ model.ProbabilisticClassifier = (*DecisionTreeClassifier)(nil)
	_ model.TreeModel               = (*DecisionTreeClassifier)(nil)
)

// NewDecisionTreeClassifier creates a classifier using the gini criterion by default.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	dt := &DecisionTreeClassifier{
		state:  model.NewStateManager(),
		params: defaultParams(criterionGini),
	}
	for _, opt := range opts {
		opt(&dt.params)
	}
	return dt
}

// Fit builds the tree from X (n_samples x n_features) and y (n_samples x 1).
func (dt *DecisionTreeClassifier) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "DecisionTreeClassifier.Fit")

	if err := model.ValidateFitInput("DecisionTreeClassifier.Fit", X, y); err != nil {
		return err
	}
	if _, cy := y.Dims(); cy != 1 {
		return errors.NewValueError("DecisionTreeClassifier.Fit", "y must be a column vector")
	}
	if err := dt.params.validate(criterionGini, criterionEntropy); err != nil {
		return err
	}

	nSamples, nFeatures := X.Dims()
	classes := extractClasses(y)
	strategy := newClassificationStrategy(dt.criterion, classes)

	fitted, err := grow("DecisionTreeClassifier", X, y, strategy, dt.params)
	if err != nil {
		return err
	}

	dt.root = fitted.root
	dt.featureImportances_ = fitted.importances
	dt.classes_ = classes
	dt.nClasses_ = len(classes)
	dt.nFeatures_ = nFeatures
	dt.state.SetDimensions(nFeatures, nSamples)
	dt.state.SetFitted()
	return nil
}

// extractClasses returns the distinct labels of y, ascending.
func extractClasses(y mat.Matrix) []float64 {
	rows, _ := y.Dims()
	seen := make(map[float64]bool)
	var classes []float64
	for i := 0; i < rows; i++ {
		label := y.At(i, 0)
		if !seen[label] {
			seen[label] = true
			classes = append(classes, label)
		}
	}
	sort.Float64s(classes)
	return classes
}

// Predict returns the predicted class of every row as an n x 1 matrix.
func (dt *DecisionTreeClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := dt.checkPredict(X, "Predict"); err != nil {
		return nil, err
	}
	return predictValues(dt.root, X, 1, dt.nJobs), nil
}

// PredictProba returns the class fractions of the leaf each row falls into.
// Columns follow Classes().
func (dt *DecisionTreeClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if err := dt.checkPredict(X, "PredictProba"); err != nil {
		return nil, err
	}

	rows, _ := X.Dims()
	probas := mat.NewDense(rows, dt.nClasses_, nil)
	forEachRow(X, dt.nJobs, func(i int, x []float64) {
		probas.SetRow(i, dt.root.leafFor(x).Distribution)
	})
	return probas, nil
}

// Apply returns the ID of the leaf every row ends up in.
func (dt *DecisionTreeClassifier) Apply(X mat.Matrix) ([]int, error) {
	if err := dt.checkPredict(X, "Apply"); err != nil {
		return nil, err
	}
	return applyLeaves(dt.root, X, dt.nJobs), nil
}

// Score returns the mean accuracy on the given data.
func (dt *DecisionTreeClassifier) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := dt.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyScore(y, yPred)
}

func (dt *DecisionTreeClassifier) checkPredict(X mat.Matrix, method string) error {
	if !dt.state.IsFitted() {
		return errors.NewNotFittedError("DecisionTreeClassifier", method)
	}
	return model.ValidatePredictInput("DecisionTreeClassifier."+method, X, dt.nFeatures_)
}

// Classes returns the sorted class labels seen during Fit.
func (dt *DecisionTreeClassifier) Classes() []float64 {
	return append([]float64(nil), dt.classes_...)
}

// Root returns the root of the fitted tree, or nil before Fit.
func (dt *DecisionTreeClassifier) Root() *Node {
	return dt.root
}

// GetDepth returns the number of edges on the longest root-to-leaf path.
func (dt *DecisionTreeClassifier) GetDepth() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.depth()
}

// GetNLeaves returns the number of leaves of the fitted tree.
func (dt *DecisionTreeClassifier) GetNLeaves() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.leaves()
}

// GetFeatureImportances returns the normalised impurity decrease per feature.
func (dt *DecisionTreeClassifier) GetFeatureImportances() []float64 {
	return append([]float64(nil), dt.featureImportances_...)
}

// GetParams returns the hyperparameters.
func (dt *DecisionTreeClassifier) GetParams() map[string]interface{} {
	return dt.params.getParams()
}

// SetParams updates hyperparameters. The fitted tree, if any, is kept until the next Fit.
func (dt *DecisionTreeClassifier) SetParams(values map[string]interface{}) error {
	return dt.params.setParams(values)
}
