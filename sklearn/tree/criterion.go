package tree

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Strategy scores candidate splits and computes leaf outputs.
// Implementations are immutable and safe for concurrent use.
//
// Labels are passed as rows of the target matrix (n_samples x n_outputs).
type Strategy interface {
	// Impurity scores splitting y into left and right. Lower is better.
	Impurity(y, left, right [][]float64) float64

	// NodeImpurity measures the heterogeneity of y on its own.
	NodeImpurity(y [][]float64) float64

	// LeafValue is the prediction stored in a leaf holding y.
	LeafValue(y [][]float64) []float64
}

// distributionStrategy is implemented by classification strategies so that
// leaves can also carry class probabilities.
type distributionStrategy interface {
	Distribution(y [][]float64) []float64
}

// Gini returns 1 - Σ p_k² over the class frequencies of labels.
func Gini(labels []float64) float64 {
	counts, n := countLabels(labels)
	return giniFromCounts(counts, n)
}

// Entropy returns -Σ p_k log2 p_k over the class frequencies of labels.
func Entropy(labels []float64) float64 {
	counts, n := countLabels(labels)
	return entropyFromCounts(counts, n)
}

func countLabels(labels []float64) ([]int, int) {
	index := make(map[float64]int)
	var counts []int
	for _, v := range labels {
		k, ok := index[v]
		if !ok {
			k = len(counts)
			index[v] = k
			counts = append(counts, 0)
		}
		counts[k]++
	}
	return counts, len(labels)
}

func giniFromCounts(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

func entropyFromCounts(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	return h
}

// classificationStrategy covers both gini and entropy. classes is sorted
// ascending so that majority votes break ties toward the smallest class.
type classificationStrategy struct {
	classes []float64
	index   map[float64]int
	measure func(counts []int, n int) float64
}

func newClassificationStrategy(criterion string, classes []float64) *classificationStrategy {
	s := &classificationStrategy{
		classes: classes,
		index:   make(map[float64]int, len(classes)),
		measure: giniFromCounts,
	}
	if criterion == criterionEntropy {
		s.measure = entropyFromCounts
	}
	for i, c := range classes {
		s.index[c] = i
	}
	return s
}

func (s *classificationStrategy) counts(y [][]float64) []int {
	counts := make([]int, len(s.classes))
	for _, row := range y {
		counts[s.index[row[0]]]++
	}
	return counts
}

func (s *classificationStrategy) NodeImpurity(y [][]float64) float64 {
	return s.measure(s.counts(y), len(y))
}

func (s *classificationStrategy) Impurity(y, left, right [][]float64) float64 {
	p := float64(len(left)) / float64(len(y))
	return p*s.NodeImpurity(left) + (1-p)*s.NodeImpurity(right)
}

// LeafValue returns the majority class; on ties the smallest class wins.
func (s *classificationStrategy) LeafValue(y [][]float64) []float64 {
	counts := s.counts(y)
	best, bestCount := 0, -1
	for k, c := range counts {
		if c > bestCount {
			best, bestCount = k, c
		}
	}
	return []float64{s.classes[best]}
}

func (s *classificationStrategy) Distribution(y [][]float64) []float64 {
	counts := s.counts(y)
	dist := make([]float64, len(counts))
	for k, c := range counts {
		dist[k] = float64(c) / float64(len(y))
	}
	return dist
}

// varianceStrategy is the regression strategy. Impurity is the negated
// variance reduction summed over outputs, so the builder can keep minimising.
type varianceStrategy struct{}

func (varianceStrategy) NodeImpurity(y [][]float64) float64 {
	total := 0.0
	for j := 0; j < outputs(y); j++ {
		total += stat.PopVariance(column(y, j), nil)
	}
	return total
}

func (v varianceStrategy) Impurity(y, left, right [][]float64) float64 {
	n := float64(len(y))
	fracLeft := float64(len(left)) / n
	fracRight := float64(len(right)) / n

	reduction := 0.0
	for j := 0; j < outputs(y); j++ {
		reduction += stat.PopVariance(column(y, j), nil) -
			(fracLeft*stat.PopVariance(column(left, j), nil) + fracRight*stat.PopVariance(column(right, j), nil))
	}
	return -reduction
}

// LeafValue returns the per-output mean of y.
func (varianceStrategy) LeafValue(y [][]float64) []float64 {
	value := make([]float64, outputs(y))
	for j := range value {
		value[j] = stat.Mean(column(y, j), nil)
	}
	return value
}

func outputs(y [][]float64) int {
	if len(y) == 0 {
		return 0
	}
	return len(y[0])
}

func column(y [][]float64, j int) []float64 {
	col := make([]float64, len(y))
	for i, row := range y {
		col[i] = row[j]
	}
	return col
}

// uniqueSorted returns the distinct values of feature f over rows, ascending.
func uniqueSorted(X [][]float64, rows []int, f int) []float64 {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = X[r][f]
	}
	sort.Float64s(values)

	out := values[:0]
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			out = append(out, v)
		}
	}
	return out
}
