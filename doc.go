// Package treeboost provides CART decision trees and binary AdaBoost for Go,
// with a scikit-learn-like API built on gonum matrices.
//
// # Features
//
//   - CART classification (gini, entropy) and multi-output regression trees
//   - AdaBoost over decision stumps with per-round reweighting
//   - Deterministic parallel split search: results never depend on n_jobs
//   - Structured errors with stack traces and zerolog-based logging
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/treeboost/sklearn/tree"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
//
//	    clf := tree.NewDecisionTreeClassifier(tree.WithMaxDepth(3))
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := clf.Predict(mat.NewDense(2, 1, []float64{1.5, 3.5}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(predictions))
//	}
//
// # Packages
//
//   - sklearn/tree: DecisionTreeClassifier, DecisionTreeRegressor
//   - sklearn/ensemble: AdaBoostClassifier, DecisionStump
//   - metrics: accuracy, MSE, MAE, R²
//   - core/model: estimator interfaces, fitted state, input validation
//   - core/parallel: chunked worker loops
//   - pkg/errors: typed errors and warnings
//   - pkg/log: structured logging
//
// # Error Handling
//
// Every fallible operation returns an error from pkg/errors, carrying a
// stack trace. Inspect them with errors.As:
//
//	var nfe *errors.NotFittedError
//	if errors.As(err, &nfe) {
//	    // call Fit first
//	}
package treeboost
