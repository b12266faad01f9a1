// Package ensemble implements binary AdaBoost over decision stumps.
//
// Each round fits the stump with the lowest weighted error, gives it the vote
// weight alpha = 0.5*ln((1-err)/(err+1e-9)) and reweights the samples with
// w_i *= exp(-alpha*y_i*h(x_i)) before renormalising them to sum to one.
// Training always runs the configured number of rounds.
//
//	ab := ensemble.NewAdaBoostClassifier(ensemble.WithNEstimators(20))
//	if err := ab.Fit(X, y); err != nil { // y in {-1, +1}
//	    return err
//	}
//	yPred, _ := ab.Predict(XTest)
package ensemble
