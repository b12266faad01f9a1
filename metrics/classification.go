package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeboost/pkg/errors"
)

// AccuracyScore は正解率を計算する。
// 行のすべての列が一致した場合にのみ正解とみなす。
func AccuracyScore(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("AccuracyScore", "empty matrix")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("AccuracyScore", rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return 0, errors.NewDimensionError("AccuracyScore", cTrue, cPred, 1)
	}

	correct := 0
	for i := 0; i < rTrue; i++ {
		match := true
		for j := 0; j < cTrue; j++ {
			if yTrue.At(i, j) != yPred.At(i, j) {
				match = false
				break
			}
		}
		if match {
			correct++
		}
	}

	return float64(correct) / float64(rTrue), nil
}
