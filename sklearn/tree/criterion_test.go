package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rowsOf(values ...float64) [][]float64 {
	out := make([][]float64, len(values))
	for i, v := range values {
		out[i] = []float64{v}
	}
	return out
}

func TestGini(t *testing.T) {
	tests := []struct {
		name   string
		labels []float64
		want   float64
	}{
		{"pure", []float64{1, 1, 1}, 0},
		{"balanced binary", []float64{0, 1, 0, 1}, 0.5},
		{"three classes", []float64{0, 1, 2}, 1 - 1.0/3},
		{"skewed", []float64{0, 0, 0, 1}, 1 - (0.75*0.75 + 0.25*0.25)},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Gini(tt.labels), 1e-12)
		})
	}
}

func TestGiniBounds(t *testing.T) {
	subsets := [][]float64{
		{0},
		{0, 1},
		{0, 0, 1},
		{0, 1, 2, 2},
		{3, 1, 4, 1, 5, 9, 2, 6},
		{7, 7, 7, 7, 7},
	}

	for _, labels := range subsets {
		counts, _ := countLabels(labels)
		k := float64(len(counts))
		g := Gini(labels)

		assert.GreaterOrEqual(t, g, 0.0)
		assert.LessOrEqual(t, g, 1-1/k+1e-12)
		assert.Equal(t, len(counts) == 1, g == 0, "gini is zero iff the subset is pure: %v", labels)
	}
}

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, Entropy([]float64{2, 2, 2}))
	assert.InDelta(t, 1.0, Entropy([]float64{0, 1, 0, 1}), 1e-12)
	assert.InDelta(t, math.Log2(3), Entropy([]float64{0, 1, 2}), 1e-12)
}

func TestClassificationStrategy(t *testing.T) {
	s := newClassificationStrategy(criterionGini, []float64{-1, 1})

	y := rowsOf(-1, -1, 1, 1)
	left := rowsOf(-1, -1)
	right := rowsOf(1, 1)

	assert.InDelta(t, 0.5, s.NodeImpurity(y), 1e-12)
	assert.Equal(t, 0.0, s.Impurity(y, left, right))

	mixed := s.Impurity(y, rowsOf(-1, 1), rowsOf(-1, 1))
	assert.InDelta(t, 0.5, mixed, 1e-12)

	assert.Equal(t, []float64{0.5, 0.5}, s.Distribution(y))
}

func TestClassificationStrategy_LeafValueTieBreak(t *testing.T) {
	// Classes are visited in ascending order; the first with the max count wins.
	s := newClassificationStrategy(criterionGini, []float64{0, 1, 2})

	assert.Equal(t, []float64{1}, s.LeafValue(rowsOf(2, 1, 2, 1)))
	assert.Equal(t, []float64{0}, s.LeafValue(rowsOf(2, 0, 1)))
	assert.Equal(t, []float64{2}, s.LeafValue(rowsOf(2, 2, 0)))
}

func TestClassificationStrategy_Entropy(t *testing.T) {
	s := newClassificationStrategy(criterionEntropy, []float64{0, 1})
	assert.InDelta(t, 1.0, s.NodeImpurity(rowsOf(0, 1)), 1e-12)
}

func TestVarianceStrategy(t *testing.T) {
	var s varianceStrategy

	y := rowsOf(1, 1, 5, 5)
	perfect := s.Impurity(y, rowsOf(5, 5), rowsOf(1, 1))
	useless := s.Impurity(y, rowsOf(1, 5), rowsOf(1, 5))

	// Impurity is the negated variance reduction: a perfect split scores the
	// negative of the parent's variance, a useless one scores zero.
	assert.InDelta(t, -4.0, perfect, 1e-12)
	assert.InDelta(t, 0.0, useless, 1e-12)
	assert.Less(t, perfect, useless)

	assert.InDelta(t, 4.0, s.NodeImpurity(y), 1e-12)
	assert.Equal(t, []float64{3}, s.LeafValue(y))
}

func TestVarianceStrategy_MultiOutput(t *testing.T) {
	var s varianceStrategy

	y := [][]float64{{0, 10}, {2, 10}, {4, 40}}
	assert.InDeltaSlice(t, []float64{2, 20}, s.LeafValue(y), 1e-12)

	// Reductions add up over outputs.
	left := y[:2]
	right := y[2:]
	want := -(s.NodeImpurity(y) - (2.0/3*s.NodeImpurity(left) + 1.0/3*s.NodeImpurity(right)))
	assert.InDelta(t, want, s.Impurity(y, left, right), 1e-12)
}

func TestUniqueSorted(t *testing.T) {
	X := [][]float64{{3}, {1}, {3}, {2}, {1}}
	assert.Equal(t, []float64{1, 2, 3}, uniqueSorted(X, []int{0, 1, 2, 3, 4}, 0))
	assert.Equal(t, []float64{3}, uniqueSorted(X, []int{0, 2}, 0))
}

func TestGoesLeft(t *testing.T) {
	assert.True(t, goesLeft(2, 2, false))
	assert.True(t, goesLeft(3, 2, false))
	assert.False(t, goesLeft(1, 2, false))

	assert.True(t, goesLeft(2, 2, true))
	assert.False(t, goesLeft(3, 2, true))
}
