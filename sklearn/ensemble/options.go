package ensemble

import (
	"github.com/YuminosukeSato/treeboost/pkg/errors"
	"github.com/YuminosukeSato/treeboost/pkg/log"
)

// RoundInfo describes one finished boosting round.
type RoundInfo struct {
	Round   int           // zero-based round index
	Stump   DecisionStump // the stump appended in this round
	Error   float64       // weighted error against the weights the stump was fit on
	Weights []float64     // sample weights after the update, a private copy
}

type params struct {
	nEstimators int
	nJobs       int
	logger      log.Logger
	onRound     func(RoundInfo)
}

func defaultParams() params {
	return params{
		nEstimators: 5,
		nJobs:       1,
	}
}

// Option is a functional option for AdaBoostClassifier.
type Option func(*params)

// WithNEstimators sets the number of boosting rounds. Every round adds exactly one stump.
func WithNEstimators(n int) Option {
	return func(p *params) {
		p.nEstimators = n
	}
}

// WithNJobs sets the number of workers used for the stump search.
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

// WithRoundCallback registers fn to be called synchronously after every round.
func WithRoundCallback(fn func(RoundInfo)) Option {
	return func(p *params) {
		p.onRound = fn
	}
}

func (p *params) validate() error {
	if p.nEstimators < 1 {
		return errors.NewValidationError("n_estimators", "must be at least 1", p.nEstimators)
	}
	return nil
}

func (p *params) getParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators": p.nEstimators,
		"n_jobs":       p.nJobs,
	}
}

func (p *params) setParams(values map[string]interface{}) error {
	for key, value := range values {
		v, ok := value.(int)
		if !ok {
			return errors.NewValidationError(key, "must be an int", value)
		}
		switch key {
		case "n_estimators":
			p.nEstimators = v
		case "n_jobs":
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
		logger = log.GetLoggerWithName("ensemble")
	}
	return logger.With(log.ModelNameKey, model)
}
