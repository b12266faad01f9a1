package tree

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeboost/pkg/errors"
	"github.com/YuminosukeSato/treeboost/pkg/log"
)

// fittedTree is what a successful Fit leaves behind.
type fittedTree struct {
	root        *Node
	importances []float64
}

// grow runs the induction shared by both estimators on already validated input.
func grow(modelName string, X, y mat.Matrix, strategy Strategy, p params) (*fittedTree, error) {
	nSamples, nFeatures := X.Dims()
	for _, f := range p.categorical {
		if f >= nFeatures {
			return nil, errors.NewValidationError("categorical_features", "feature index out of range", f)
		}
	}

	logger := p.loggerFor(modelName)
	logger.Info("Fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		"criterion", p.criterion,
		"max_depth", p.maxDepth,
		"min_samples_split", p.minSamplesSplit,
	)
	start := time.Now()

	b := newBuilder(X, y, strategy, p, logger)
	root := b.fit()

	if root.IsLeaf() && nSamples >= p.minSamplesSplit {
		errors.Warn(errors.NewDegenerateFitWarning(modelName, "no split found at the root, the tree is a single leaf"))
	}

	logger.Info("Fit completed",
		log.OperationKey, log.OperationFit,
		log.DepthKey, root.depth(),
		log.LeavesKey, root.leaves(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &fittedTree{root: root, importances: b.featureImportances()}, nil
}
