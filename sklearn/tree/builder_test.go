package tree

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeboost/pkg/errors"
	"github.com/YuminosukeSato/treeboost/pkg/log"
)

// makeBlobs draws n points around each center with the given spread.
// Labels are the center indices.
func makeBlobs(seed uint64, n int, std float64, centers ...[2]float64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(seed, seed))
	total := n * len(centers)
	X := mat.NewDense(total, 2, nil)
	y := mat.NewDense(total, 1, nil)
	for c, center := range centers {
		for i := 0; i < n; i++ {
			row := c*n + i
			X.Set(row, 0, center[0]+std*rng.NormFloat64())
			X.Set(row, 1, center[1]+std*rng.NormFloat64())
			y.Set(row, 0, float64(c))
		}
	}
	return X, y
}

type nodeSummary struct {
	id, depth, samples int
	leaf               bool
	feature            int
	threshold          float64
	value              []float64
}

func summarize(root *Node) []nodeSummary {
	var out []nodeSummary
	root.Walk(func(n *Node) {
		s := nodeSummary{id: n.ID, depth: n.Depth, samples: n.Samples, leaf: n.IsLeaf()}
		if n.IsLeaf() {
			s.value = n.Value
		} else {
			s.feature, s.threshold = n.Feature, n.Threshold
		}
		out = append(out, s)
	})
	return out
}

func TestSeparableBlobsReachPerfectTrainingAccuracy(t *testing.T) {
	X, y := makeBlobs(1, 100, 1.0, [2]float64{-5, -5}, [2]float64{5, 5})

	clf := NewDecisionTreeClassifier()
	require.NoError(t, clf.Fit(X, y))

	score, err := clf.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestFitIsDeterministic(t *testing.T) {
	X, y := makeBlobs(7, 60, 2.5, [2]float64{0, 0}, [2]float64{2, 1}, [2]float64{1, 3})

	first := NewDecisionTreeClassifier()
	second := NewDecisionTreeClassifier()
	require.NoError(t, first.Fit(X, y))
	require.NoError(t, second.Fit(X, y))

	assert.Equal(t, summarize(first.Root()), summarize(second.Root()))
}

func TestParallelSplitSearchMatchesSequential(t *testing.T) {
	X, y := makeBlobs(11, 80, 2.0, [2]float64{0, 0}, [2]float64{1.5, 1.5})

	// Duplicate every feature so that ties across features are common and
	// the lowest feature index must win regardless of scheduling.
	rows, _ := X.Dims()
	wide := mat.NewDense(rows, 4, nil)
	for i := 0; i < rows; i++ {
		wide.Set(i, 0, X.At(i, 0))
		wide.Set(i, 1, X.At(i, 0))
		wide.Set(i, 2, X.At(i, 1))
		wide.Set(i, 3, X.At(i, 1))
	}

	sequential := NewDecisionTreeClassifier(WithNJobs(1))
	parallel := NewDecisionTreeClassifier(WithNJobs(4))
	require.NoError(t, sequential.Fit(wide, y))
	require.NoError(t, parallel.Fit(wide, y))

	assert.Equal(t, summarize(sequential.Root()), summarize(parallel.Root()))

	sequential.Root().Walk(func(n *Node) {
		if !n.IsLeaf() {
			assert.True(t, n.Feature == 0 || n.Feature == 2, "duplicate feature %d chosen over its twin", n.Feature)
		}
	})
}

func TestLeafConsistencyOnTrainingData(t *testing.T) {
	X, y := makeBlobs(3, 50, 2.0, [2]float64{0, 0}, [2]float64{2, 2})

	clf := NewDecisionTreeClassifier(WithMaxDepth(3))
	require.NoError(t, clf.Fit(X, y))

	ids, err := clf.Apply(X)
	require.NoError(t, err)

	routed := make(map[int]int)
	for _, id := range ids {
		routed[id]++
	}

	leaves := 0
	clf.Root().Walk(func(n *Node) {
		if n.IsLeaf() {
			leaves++
			assert.Equal(t, n.Samples, routed[n.ID], "leaf %d", n.ID)
		} else {
			assert.Equal(t, n.Samples, n.Left.Samples+n.Right.Samples)
		}
	})
	assert.Equal(t, leaves, len(routed))
}

func TestNodeIDsArePreorder(t *testing.T) {
	X, y := makeBlobs(5, 30, 1.5, [2]float64{0, 0}, [2]float64{2, 2})

	clf := NewDecisionTreeClassifier()
	require.NoError(t, clf.Fit(X, y))

	next := 0
	clf.Root().Walk(func(n *Node) {
		assert.Equal(t, next, n.ID)
		next++
	})
}

func TestCategoricalFeatureSplitsOnEquality(t *testing.T) {
	X := mat.NewDense(9, 1, []float64{0, 1, 2, 0, 1, 2, 0, 1, 2})
	y := mat.NewDense(9, 1, []float64{0, 1, 0, 0, 1, 0, 0, 1, 0})

	clf := NewDecisionTreeClassifier(WithCategoricalFeatures(0))
	require.NoError(t, clf.Fit(X, y))

	root := clf.Root()
	require.False(t, root.IsLeaf())
	assert.True(t, root.Categorical)
	assert.Equal(t, 1.0, root.Threshold)
	assert.Equal(t, 3, root.Left.Samples)

	pred, err := clf.Predict(mat.NewDense(3, 1, []float64{1, 2, 0}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, mat.Col(nil, 0, pred))
}

func TestCategoricalFeatureOutOfRange(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 0, 1})
	y := mat.NewDense(4, 1, []float64{0, 1, 0, 1})

	clf := NewDecisionTreeClassifier(WithCategoricalFeatures(3))
	err := clf.Fit(X, y)

	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestMinImpurityCeiling(t *testing.T) {
	X, y := makeBlobs(9, 20, 1.0, [2]float64{-3, 0}, [2]float64{3, 0})

	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })

	// No gini split can be strictly below zero, so the root stays a leaf.
	clf := NewDecisionTreeClassifier(WithMinImpurity(0))
	require.NoError(t, clf.Fit(X, y))
	assert.True(t, clf.Root().IsLeaf())
	assert.Equal(t, 1, clf.GetNLeaves())
	assert.Equal(t, 0, clf.GetDepth())
	assert.Equal(t, []float64{0.5, 0.5}, clf.Root().Distribution)

	require.Len(t, warnings, 1)
	var dfw *errors.DegenerateFitWarning
	assert.True(t, errors.As(warnings[0], &dfw))

	// A loose ceiling still lets the clean split through.
	loose := NewDecisionTreeClassifier(WithMinImpurity(0.1))
	require.NoError(t, loose.Fit(X, y))
	assert.False(t, loose.Root().IsLeaf())
}

func TestMaxDepthZeroSplitsOnlyTheRoot(t *testing.T) {
	X, y := makeBlobs(13, 40, 2.0, [2]float64{0, 0}, [2]float64{1, 1})

	clf := NewDecisionTreeClassifier(WithMaxDepth(0))
	require.NoError(t, clf.Fit(X, y))

	assert.Equal(t, 1, clf.GetDepth())
	assert.Equal(t, 2, clf.GetNLeaves())
}

func TestSingleValuedFeatureIsSkipped(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		7, 0,
		7, 1,
		7, 2,
		7, 10,
		7, 11,
		7, 12,
	})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})

	clf := NewDecisionTreeClassifier()
	require.NoError(t, clf.Fit(X, y))

	clf.Root().Walk(func(n *Node) {
		if !n.IsLeaf() {
			assert.Equal(t, 1, n.Feature)
		}
	})
	assert.Equal(t, []float64{0, 1}, clf.GetFeatureImportances())
}

func TestFitValidation(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{0, 0, 1, 1, 2, 2, 3, 3})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	t.Run("row mismatch", func(t *testing.T) {
		err := NewDecisionTreeClassifier().Fit(X, mat.NewDense(3, 1, nil))
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de))
	})

	t.Run("NaN feature", func(t *testing.T) {
		bad := mat.DenseCopyOf(X)
		bad.Set(2, 1, math.NaN())
		err := NewDecisionTreeClassifier().Fit(bad, y)
		var ne *errors.NumericalInstabilityError
		assert.True(t, errors.As(err, &ne))
	})

	t.Run("multi-column labels", func(t *testing.T) {
		err := NewDecisionTreeClassifier().Fit(X, mat.NewDense(4, 2, nil))
		var ve *errors.ValueError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("unsupported criterion", func(t *testing.T) {
		err := NewDecisionTreeClassifier(WithCriterion("squared_error")).Fit(X, y)
		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("min_samples_split below two", func(t *testing.T) {
		err := NewDecisionTreeClassifier(WithMinSamplesSplit(1)).Fit(X, y)
		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("feature mismatch at predict", func(t *testing.T) {
		clf := NewDecisionTreeClassifier()
		require.NoError(t, clf.Fit(X, y))
		_, err := clf.Predict(mat.NewDense(1, 3, nil))
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de))
	})
}

func TestFitLogsSplitsAtDebug(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)

	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	clf := NewDecisionTreeClassifier(WithLogger(logger), WithMaxDepth(0))
	require.NoError(t, clf.Fit(X, y))

	assert.True(t, logger.ContainsMessage("Fit started"))
	assert.True(t, logger.ContainsMessage("split"))
	assert.True(t, logger.ContainsMessage("Fit completed"))
	assert.True(t, logger.ContainsField(log.ModelNameKey, "DecisionTreeClassifier"))
}
