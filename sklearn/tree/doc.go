// Package tree implements CART decision trees for classification and regression.
//
// Trees are grown greedily. At every node each feature is scanned in index
// order and each distinct value of that feature within the node is tried as
// a threshold, in ascending order. Rows with x[f] >= threshold go to the left
// child, the rest to the right (categorical features use equality instead).
// The candidate with the lowest impurity wins; ties keep the first one found,
// which makes fitted trees fully deterministic even when the scan runs in
// parallel.
//
// The impurity measure and leaf value are supplied by a Strategy chosen from
// the estimator type and criterion:
//
//   - DecisionTreeClassifier: gini (default) or entropy, majority-vote leaves
//   - DecisionTreeRegressor: negated variance reduction, mean-valued leaves
//
// Example:
//
//	clf := tree.NewDecisionTreeClassifier(tree.WithMaxDepth(5))
//	if err := clf.Fit(X, y); err != nil {
//	    return err
//	}
//	yPred, err := clf.Predict(XTest)
package tree
