package ensemble

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeboost/core/model"
	"github.com/YuminosukeSato/treeboost/core/parallel"
	"github.com/YuminosukeSato/treeboost/metrics"
	"github.com/YuminosukeSato/treeboost/pkg/errors"
	"github.com/YuminosukeSato/treeboost/pkg/log"
)

const modelName = "AdaBoostClassifier"

// Row-parallel scoring kicks in above this many rows.
const parallelPredictMinRows = 1000

// AdaBoostClassifier is a binary AdaBoost ensemble of decision stumps.
// Labels must be encoded as -1 and +1.
type AdaBoostClassifier struct {
	state *model.StateManager
	params

	estimators_       []DecisionStump
	estimatorWeights_ []float64
	nFeatures_        int
}

var (
	_ model.Classifier         = (*AdaBoostClassifier)(nil)
	_ model.DecisionFunctioner = (*AdaBoostClassifier)(nil)
)

// NewAdaBoostClassifier creates an AdaBoost classifier running 5 rounds by default.
func NewAdaBoostClassifier(opts ...Option) *AdaBoostClassifier {
	ab := &AdaBoostClassifier{
		state:  model.NewStateManager(),
		params: defaultParams(),
	}
	for _, opt := range opts {
		opt(&ab.params)
	}
	return ab
}

// Fit runs exactly n_estimators boosting rounds on X (n_samples x n_features)
// and y (n_samples x 1, values in {-1, +1}).
func (ab *AdaBoostClassifier) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "AdaBoostClassifier.Fit")

	if err := model.ValidateFitInput("AdaBoostClassifier.Fit", X, y); err != nil {
		return err
	}
	if _, cy := y.Dims(); cy != 1 {
		return errors.NewValueError("AdaBoostClassifier.Fit", "y must be a column vector")
	}
	if err := ab.params.validate(); err != nil {
		return err
	}

	nSamples, nFeatures := X.Dims()
	labels := mat.Col(nil, 0, y)
	for _, label := range labels {
		if label != 1 && label != -1 {
			return errors.NewValidationError("y", "labels must be -1 or +1", label)
		}
	}

	rows := make([][]float64, nSamples)
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}

	logger := ab.params.loggerFor(modelName)
	logger.Info("Fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		"n_estimators", ab.nEstimators,
	)
	start := time.Now()

	weights := make([]float64, nSamples)
	for i := range weights {
		weights[i] = 1 / float64(nSamples)
	}
	workers := parallel.Workers(ab.nJobs)

	stumps := make([]DecisionStump, 0, ab.nEstimators)
	for round := 0; round < ab.nEstimators; round++ {
		stump := fitStump(rows, labels, weights, workers)

		for i, x := range rows {
			weights[i] *= math.Exp(-stump.Alpha * labels[i] * stump.Predict(x))
		}
		total := floats.Sum(weights)
		if err := errors.CheckScalar("AdaBoostClassifier.Fit", total, round); err != nil {
			return err
		}
		floats.Scale(1/total, weights)

		stumps = append(stumps, stump)

		logger.Debug("round completed",
			log.IterationKey, round,
			log.FeatureIndexKey, stump.Feature,
			log.ThresholdKey, stump.Threshold,
			log.WeightedErrorKey, stump.Error,
			"alpha", stump.Alpha,
		)
		if ab.onRound != nil {
			ab.onRound(RoundInfo{
				Round:   round,
				Stump:   stump,
				Error:   stump.Error,
				Weights: append([]float64(nil), weights...),
			})
		}
	}

	ab.estimators_ = stumps
	ab.estimatorWeights_ = make([]float64, len(stumps))
	for i, s := range stumps {
		ab.estimatorWeights_[i] = s.Alpha
	}
	ab.nFeatures_ = nFeatures
	ab.state.SetDimensions(nFeatures, nSamples)
	ab.state.SetFitted()

	logger.Info("Fit completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// DecisionFunction returns Σ alpha_s * stump_s(x) for every row as an n x 1 matrix.
func (ab *AdaBoostClassifier) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	if err := ab.checkPredict(X, "DecisionFunction"); err != nil {
		return nil, err
	}
	return ab.decision(X), nil
}

func (ab *AdaBoostClassifier) decision(X mat.Matrix) *mat.VecDense {
	rows, cols := X.Dims()
	scores := mat.NewVecDense(rows, nil)

	run := func(start, end int) {
		x := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(x, i, X)
			score := 0.0
			for _, s := range ab.estimators_ {
				score += s.Alpha * s.Predict(x)
			}
			scores.SetVec(i, score)
		}
	}

	parallel.ParallelizeWithThreshold(rows, parallelPredictMinRows, parallel.Workers(ab.nJobs), run)
	return scores
}

// Predict returns the sign of the decision function as an n x 1 matrix.
// A score of exactly zero is labelled +1.
func (ab *AdaBoostClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := ab.checkPredict(X, "Predict"); err != nil {
		return nil, err
	}

	scores := ab.decision(X)
	n := scores.Len()
	labels := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		if scores.AtVec(i) >= 0 {
			labels.Set(i, 0, 1)
		} else {
			labels.Set(i, 0, -1)
		}
	}
	return labels, nil
}

// Score returns the mean accuracy on the given data.
func (ab *AdaBoostClassifier) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := ab.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyScore(y, yPred)
}

func (ab *AdaBoostClassifier) checkPredict(X mat.Matrix, method string) error {
	if !ab.state.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return model.ValidatePredictInput(modelName+"."+method, X, ab.nFeatures_)
}

// Classes returns the two labels the classifier predicts.
func (ab *AdaBoostClassifier) Classes() []float64 {
	return []float64{-1, 1}
}

// Estimators returns the fitted stumps in training order.
func (ab *AdaBoostClassifier) Estimators() []DecisionStump {
	return append([]DecisionStump(nil), ab.estimators_...)
}

// EstimatorWeights returns the alpha of every stump in training order.
func (ab *AdaBoostClassifier) EstimatorWeights() []float64 {
	return append([]float64(nil), ab.estimatorWeights_...)
}

// GetParams returns the hyperparameters.
func (ab *AdaBoostClassifier) GetParams() map[string]interface{} {
	return ab.params.getParams()
}

// SetParams updates hyperparameters. The fitted ensemble, if any, is kept until the next Fit.
func (ab *AdaBoostClassifier) SetParams(values map[string]interface{}) error {
	return ab.params.setParams(values)
}
