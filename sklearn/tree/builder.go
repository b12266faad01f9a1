package tree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeboost/core/parallel"
	"github.com/YuminosukeSato/treeboost/pkg/log"
)

// Split search across features is only worth spawning goroutines for
// reasonably large nodes.
const parallelSplitMinRows = 64

// builder grows one tree. It owns row-major copies of the training data and
// hands out fresh row-index subsets to every recursive call.
type builder struct {
	X        [][]float64
	y        [][]float64
	strategy Strategy

	maxDepth        int
	minSamplesSplit int
	minImpurity     float64
	categorical     []bool
	workers         int
	logger          log.Logger

	nextID      int
	importances []float64
}

// candidate is the best split found for one node or one feature.
type candidate struct {
	found     bool
	impurity  float64
	feature   int
	threshold float64
	left      []int
	right     []int
}

// better reports whether c should replace best. Ties keep best, which was
// found earlier in (feature, threshold) order.
func (c candidate) better(best candidate) bool {
	return c.found && (!best.found || c.impurity < best.impurity)
}

func newBuilder(X, y mat.Matrix, strategy Strategy, p params, logger log.Logger) *builder {
	nSamples, nFeatures := X.Dims()

	b := &builder{
		X:               make([][]float64, nSamples),
		y:               make([][]float64, nSamples),
		strategy:        strategy,
		maxDepth:        p.maxDepth,
		minSamplesSplit: p.minSamplesSplit,
		minImpurity:     p.minImpurity,
		categorical:     make([]bool, nFeatures),
		workers:         parallel.Workers(p.nJobs),
		logger:          logger,
		importances:     make([]float64, nFeatures),
	}
	for i := 0; i < nSamples; i++ {
		b.X[i] = mat.Row(nil, i, X)
		b.y[i] = mat.Row(nil, i, y)
	}
	for _, f := range p.categorical {
		b.categorical[f] = true
	}
	return b
}

// fit grows the tree over every training row.
func (b *builder) fit() *Node {
	rows := make([]int, len(b.X))
	for i := range rows {
		rows[i] = i
	}
	return b.build(rows, 0)
}

// build returns the subtree induced from rows at the given depth.
func (b *builder) build(rows []int, depth int) *Node {
	labels := b.labels(rows)
	node := &Node{
		ID:       b.nextID,
		Depth:    depth,
		Samples:  len(rows),
		Impurity: b.strategy.NodeImpurity(labels),
	}
	b.nextID++

	var best candidate
	if len(rows) >= b.minSamplesSplit && (b.maxDepth < 0 || depth <= b.maxDepth) {
		best = b.bestSplit(rows, labels)
	}

	if best.found && best.impurity < b.minImpurity {
		node.Feature = best.feature
		node.Threshold = best.threshold
		node.Categorical = b.categorical[best.feature]
		b.logger.Debug("split",
			log.FeatureIndexKey, best.feature,
			log.ThresholdKey, best.threshold,
			log.ImpurityKey, best.impurity,
			log.DepthKey, depth,
			log.SamplesKey, len(rows),
		)
		node.Left = b.build(best.left, depth+1)
		node.Right = b.build(best.right, depth+1)
		b.addImportance(node)
		return node
	}

	node.Value = b.strategy.LeafValue(labels)
	if d, ok := b.strategy.(distributionStrategy); ok {
		node.Distribution = d.Distribution(labels)
	}
	return node
}

// bestSplit scans every feature. Each feature is scored independently, then
// the winners are reduced in ascending feature order, so the result does not
// depend on how the scan was scheduled.
func (b *builder) bestSplit(rows []int, labels [][]float64) candidate {
	nFeatures := len(b.categorical)
	perFeature := make([]candidate, nFeatures)

	scan := func(start, end int) {
		for f := start; f < end; f++ {
			perFeature[f] = b.bestSplitForFeature(f, rows, labels)
		}
	}
	if b.workers > 1 && nFeatures > 1 && len(rows) >= parallelSplitMinRows {
		parallel.ParallelizeN(nFeatures, b.workers, scan)
	} else {
		scan(0, nFeatures)
	}

	var best candidate
	for _, c := range perFeature {
		if c.better(best) {
			best = c
		}
	}
	return best
}

// bestSplitForFeature tries every distinct value of feature f within rows as
// a threshold, in ascending order.
func (b *builder) bestSplitForFeature(f int, rows []int, labels [][]float64) candidate {
	var best candidate
	for _, threshold := range uniqueSorted(b.X, rows, f) {
		left, right := b.partition(rows, f, threshold)
		if len(left) == 0 || len(right) == 0 {
			continue
		}

		c := candidate{
			found:     true,
			impurity:  b.strategy.Impurity(labels, b.labels(left), b.labels(right)),
			feature:   f,
			threshold: threshold,
			left:      left,
			right:     right,
		}
		if c.better(best) {
			best = c
		}
	}
	return best
}

func (b *builder) partition(rows []int, f int, threshold float64) (left, right []int) {
	categorical := b.categorical[f]
	for _, r := range rows {
		if goesLeft(b.X[r][f], threshold, categorical) {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}

func (b *builder) labels(rows []int) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = b.y[r]
	}
	return out
}

// addImportance accumulates the weighted impurity decrease of a split node.
func (b *builder) addImportance(node *Node) {
	decrease := float64(node.Samples)*node.Impurity -
		float64(node.Left.Samples)*node.Left.Impurity -
		float64(node.Right.Samples)*node.Right.Impurity
	b.importances[node.Feature] += decrease
}

// featureImportances returns the accumulated decreases normalised to sum to 1.
// All zeros are returned unchanged when no split reduced impurity.
func (b *builder) featureImportances() []float64 {
	out := make([]float64, len(b.importances))
	total := 0.0
	for _, v := range b.importances {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return out
	}
	for i, v := range b.importances {
		if v > 0 {
			out[i] = v / total
		}
	}
	return out
}
