package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeboost/pkg/errors"
)

// ValidateFitInput checks the training contract shared by every estimator:
// non-empty X, matching row counts, at least one target column and no NaN/Inf.
func ValidateFitInput(op string, X, y mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	ry, cy := y.Dims()
	if ry != r {
		return errors.NewDimensionError(op, r, ry, 0)
	}
	if cy == 0 {
		return errors.NewModelError(op, "empty target", errors.ErrEmptyData)
	}

	if err := errors.CheckMatrix(op, X, r, c); err != nil {
		return err
	}
	return errors.CheckMatrix(op, y, ry, cy)
}

// ValidatePredictInput checks X against the feature count seen during Fit.
func ValidatePredictInput(op string, X mat.Matrix, nFeatures int) error {
	r, c := X.Dims()
	if r == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if c != nFeatures {
		return errors.NewDimensionError(op, nFeatures, c, 1)
	}
	return errors.CheckMatrix(op, X, r, c)
}
