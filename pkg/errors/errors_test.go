package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "empty data",
			err:     ErrEmptyData,
			wantMsg: "treeboost: Fit: empty data: empty data",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "treeboost: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}

			if tt.err != nil && !Is(err, tt.err) {
				t.Error("Expected wrapped cause to be reachable with Is")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("DecisionTreeClassifier.Fit", 10, 8, 0)

	want := "treeboost: DecisionTreeClassifier.Fit: dimension mismatch on axis 0 (rows). Expected 10, got 8"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Got != 8 {
		t.Errorf("Got = %d, want 8", dimErr.Got)
	}

	featErr := NewDimensionError("Predict", 2, 3, 1)
	if !strings.Contains(featErr.Error(), "(features)") {
		t.Errorf("Expected axis 1 to be reported as features: %v", featErr)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("AdaBoostClassifier", "Predict")

	want := "treeboost: AdaBoostClassifier: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("n_estimators", "must be positive", 0)

	want := "treeboost: validation failed for parameter 'n_estimators': must be positive (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("AccuracyScore", "empty vector")
	if err.Error() != "treeboost: AccuracyScore: empty vector" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCheckMatrix(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		wantErr  bool
		wantIter int
	}{
		{name: "finite", data: []float64{1, 2, 3, 4}},
		{name: "nan in second row", data: []float64{1, 2, math.NaN(), 4}, wantErr: true, wantIter: 1},
		{name: "inf in first row", data: []float64{math.Inf(1), 2, 3, 4}, wantErr: true, wantIter: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mat.NewDense(2, 2, tt.data)
			err := CheckMatrix("Fit", m, 2, 2)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckMatrix() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var numErr *NumericalInstabilityError
			if !As(err, &numErr) {
				t.Fatalf("Expected NumericalInstabilityError, got %T", err)
			}
			if numErr.Iteration != tt.wantIter {
				t.Errorf("Iteration = %d, want %d", numErr.Iteration, tt.wantIter)
			}
		})
	}

	if err := CheckScalar("alpha", math.NaN(), 3); err == nil {
		t.Error("Expected CheckScalar to reject NaN")
	}
}

func TestWarn_UsesZerologFunc(t *testing.T) {
	var got error
	SetZerologWarnFunc(func(w error) { got = w })
	defer SetZerologWarnFunc(nil)

	w := NewDegenerateFitWarning("DecisionTreeRegressor", "no valid split at root")
	Warn(w)

	if got != w {
		t.Errorf("Expected warning to be routed to zerolog func, got %v", got)
	}
	if !strings.Contains(w.Error(), "no valid split at root") {
		t.Errorf("unexpected warning text: %v", w)
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d rows", "Fit", 10)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in Fit: expected 10 rows") {
		t.Errorf("unexpected wrapped message: %v", wrapped)
	}
}

func TestWithStack(t *testing.T) {
	if WithStack(nil) != nil {
		t.Error("Expected WithStack(nil) to be nil")
	}

	err := WithStack(ErrEmptyData)
	if !Is(err, ErrEmptyData) {
		t.Error("Expected Is(err, ErrEmptyData) to be true")
	}
	if err.Error() != ErrEmptyData.Error() {
		t.Errorf("WithStack changed the message: %q", err.Error())
	}
	if !strings.Contains(fmt.Sprintf("%+v", err), "TestWithStack") {
		t.Errorf("Expected stack trace to mention the caller, got %+v", err)
	}
}
