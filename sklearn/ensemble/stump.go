package ensemble

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/treeboost/core/parallel"
)

// alphaEpsilon keeps alpha finite when a stump makes no mistakes.
const alphaEpsilon = 1e-9

// DecisionStump is a one-split weak classifier over labels in {-1, +1}.
//
// With Polarity +1 it predicts +1 iff x[Feature] >= Threshold; Polarity -1
// negates that rule.
type DecisionStump struct {
	Feature   int
	Threshold float64
	Polarity  float64
	Alpha     float64 // vote weight in the ensemble
	Error     float64 // weighted training error, <= 0.5
}

// Predict returns the stump's vote for a single sample.
func (s DecisionStump) Predict(x []float64) float64 {
	if x[s.Feature] >= s.Threshold {
		return s.Polarity
	}
	return -s.Polarity
}

// stumpAlpha is 0.5 * ln((1-err) / (err+eps)).
func stumpAlpha(err float64) float64 {
	return 0.5 * math.Log((1-err)/(err+alphaEpsilon))
}

// fitStump finds the stump with the lowest weighted error. X is row-major,
// y holds ±1 labels and w sums to 1. Features are scored independently and
// reduced in ascending order, so ties resolve to the lowest feature and then
// the lowest threshold no matter how many workers ran.
func fitStump(X [][]float64, y, w []float64, workers int) DecisionStump {
	nFeatures := len(X[0])
	perFeature := make([]DecisionStump, nFeatures)

	scan := func(start, end int) {
		for f := start; f < end; f++ {
			perFeature[f] = bestStumpForFeature(X, y, w, f)
		}
	}
	if workers > 1 && nFeatures > 1 {
		parallel.ParallelizeN(nFeatures, workers, scan)
	} else {
		scan(0, nFeatures)
	}

	best := perFeature[0]
	for _, s := range perFeature[1:] {
		if s.Error < best.Error {
			best = s
		}
	}
	best.Alpha = stumpAlpha(best.Error)
	return best
}

// bestStumpForFeature tries every distinct value of feature f as a
// threshold, ascending. Each candidate's error is summed over the rows in
// index order, so equal errors compare equal and the lowest threshold wins.
func bestStumpForFeature(X [][]float64, y, w []float64, f int) DecisionStump {
	best := DecisionStump{Feature: f, Error: math.Inf(1)}
	for _, threshold := range featureValues(X, f) {
		e, polarity := 0.0, 1.0
		for i, x := range X {
			pred := -1.0
			if x[f] >= threshold {
				pred = 1
			}
			if pred != y[i] {
				e += w[i]
			}
		}
		if e > 0.5 {
			// Rounding can push the flipped error just below zero.
			e, polarity = math.Max(1-e, 0), -1.0
		}
		if e < best.Error {
			best.Threshold, best.Polarity, best.Error = threshold, polarity, e
		}
	}
	return best
}

// featureValues returns the distinct values of column f in ascending order.
func featureValues(X [][]float64, f int) []float64 {
	values := make([]float64, len(X))
	for i, x := range X {
		values[i] = x[f]
	}
	sort.Float64s(values)

	unique := values[:0]
	for _, v := range values {
		if len(unique) == 0 || v != unique[len(unique)-1] {
			unique = append(unique, v)
		}
	}
	return unique
}
