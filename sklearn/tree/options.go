package tree

import (
	"math"

	"github.com/YuminosukeSato/treeboost/pkg/errors"
	"github.com/YuminosukeSato/treeboost/pkg/log"
)

const (
	criterionGini         = "gini"
	criterionEntropy      = "entropy"
	criterionSquaredError = "squared_error"
)

// params holds the hyperparameters shared by the classifier and the regressor.
type params struct {
	criterion       string
	maxDepth        int     // < 0 means unlimited
	minSamplesSplit int     // minimum rows required to attempt a split
	minImpurity     float64 // a split is accepted only if its impurity is strictly below this
	categorical     []int   // features split by equality instead of >=
	nJobs           int     // <= 1 runs split search and prediction sequentially
	logger          log.Logger
}

func defaultParams(criterion string) params {
	return params{
		criterion:       criterion,
		maxDepth:        -1,
		minSamplesSplit: 2,
		minImpurity:     math.Inf(1),
		nJobs:           1,
	}
}

// Option is a functional option for DecisionTreeClassifier and DecisionTreeRegressor.
type Option func(*params)

// WithCriterion sets the impurity measure.
// Classifiers accept "gini" and "entropy", regressors "squared_error".
func WithCriterion(criterion string) Option {
	return func(p *params) {
		p.criterion = criterion
	}
}

// WithMaxDepth bounds the depth at which nodes may still be split.
// A node at depth d is split only while d <= maxDepth; negative means unlimited.
func WithMaxDepth(depth int) Option {
	return func(p *params) {
		p.maxDepth = depth
	}
}

// WithMinSamplesSplit sets the minimum number of rows a node needs to be split.
func WithMinSamplesSplit(n int) Option {
	return func(p *params) {
		p.minSamplesSplit = n
	}
}

// WithMinImpurity sets the impurity ceiling: the best split of a node is used
// only when its impurity is strictly below this value.
func WithMinImpurity(ceiling float64) Option {
	return func(p *params) {
		p.minImpurity = ceiling
	}
}

// WithCategoricalFeatures marks features whose values are category codes.
// Such features route a row to the left child only on exact equality.
func WithCategoricalFeatures(features ...int) Option {
	return func(p *params) {
		p.categorical = append([]int(nil), features...)
	}
}

// WithNJobs sets the number of workers for split search and prediction.
// 1 is sequential, <= 0 uses every CPU core.
func WithNJobs(n int) Option {
	return func(p *params) {
		p.nJobs = n
	}
}

// WithLogger overrides the logger used during Fit.
func WithLogger(logger log.Logger) Option {
	return func(p *params) {
		p.logger = logger
	}
}

func (p *params) validate(allowed ...string) error {
	ok := false
	for _, c := range allowed {
		if p.criterion == c {
			ok = true
			break
		}
	}
	if !ok {
		return errors.NewValidationError("criterion", "unsupported criterion", p.criterion)
	}
	if p.minSamplesSplit < 2 {
		return errors.NewValidationError("min_samples_split", "must be at least 2", p.minSamplesSplit)
	}
	if math.IsNaN(p.minImpurity) {
		return errors.NewValidationError("min_impurity", "must not be NaN", p.minImpurity)
	}
	for _, f := range p.categorical {
		if f < 0 {
			return errors.NewValidationError("categorical_features", "feature index must be non-negative", f)
		}
	}
	return nil
}

func (p *params) getParams() map[string]interface{} {
	return map[string]interface{}{
		"criterion":            p.criterion,
		"max_depth":            p.maxDepth,
		"min_samples_split":    p.minSamplesSplit,
		"min_impurity":         p.minImpurity,
		"categorical_features": append([]int(nil), p.categorical...),
		"n_jobs":               p.nJobs,
	}
}

func (p *params) setParams(values map[string]interface{}) error {
	for key, value := range values {
		switch key {
		case "criterion":
			v, ok := value.(string)
			if !ok {
				return errors.NewValidationError(key, "must be a string", value)
			}
			p.criterion = v
		case "max_depth":
			v, ok := value.(int)
			if !ok {
				return errors.NewValidationError(key, "must be an int", value)
			}
			p.maxDepth = v
		case "min_samples_split":
			v, ok := value.(int)
			if !ok {
				return errors.NewValidationError(key, "must be an int", value)
			}
			p.minSamplesSplit = v
		case "min_impurity":
			v, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(key, "must be a float64", value)
			}
			p.minImpurity = v
		case "categorical_features":
			v, ok := value.([]int)
			if !ok {
				return errors.NewValidationError(key, "must be []int", value)
			}
			p.categorical = append([]int(nil), v...)
		case "n_jobs":
			v, ok := value.(int)
			if !ok {
				return errors.NewValidationError(key, "must be an int", value)
			}
			p.nJobs = v
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}

func (p *params) loggerFor(model string) log.Logger {
	logger := p.logger
	if logger == nil {
		logger = log.GetLoggerWithName("tree")
	}
	return logger.With(log.ModelNameKey, model)
}
