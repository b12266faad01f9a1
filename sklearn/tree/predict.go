package tree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeboost/core/parallel"
)

// Row-parallel prediction kicks in above this many rows.
const parallelPredictMinRows = 1000

// forEachRow applies fn to every row of X, in parallel chunks when the batch
// is large and more than one worker is allowed. fn must only write to row i.
func forEachRow(X mat.Matrix, nJobs int, fn func(i int, x []float64)) {
	rows, cols := X.Dims()
	run := func(start, end int) {
		x := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(x, i, X)
			fn(i, x)
		}
	}

	parallel.ParallelizeWithThreshold(rows, parallelPredictMinRows, parallel.Workers(nJobs), run)
}

// predictValues fills an n x width matrix with leaf values.
func predictValues(root *Node, X mat.Matrix, width, nJobs int) *mat.Dense {
	rows, _ := X.Dims()
	out := mat.NewDense(rows, width, nil)
	forEachRow(X, nJobs, func(i int, x []float64) {
		out.SetRow(i, root.Predict(x))
	})
	return out
}

// applyLeaves returns the ID of the leaf every row falls into.
func applyLeaves(root *Node, X mat.Matrix, nJobs int) []int {
	rows, _ := X.Dims()
	ids := make([]int, rows)
	forEachRow(X, nJobs, func(i int, x []float64) {
		ids[i] = root.leafFor(x).ID
	})
	return ids
}
