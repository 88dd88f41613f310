package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/go-tspc/tspc/internal/tensor"
)

// Tensor column layout: column 0 is the series id, column 1 the step id.
// Training tensors carry the integer class label in the last column, with
// features in between. Inference tensors have no label column.
const (
	seriesCol    = 0
	stepCol      = 1
	featureCol   = 2
	minTrainCols = 4
	minInferCols = 3
)

// stepKey identifies one (series, step) position across windows.
type stepKey struct {
	Series float64
	Step   float64
}

func (k stepKey) less(other stepKey) bool {
	if k.Series != other.Series {
		return k.Series < other.Series
	}
	return k.Step < other.Step
}

// extractTrain splits a training tensor into the flattened feature matrix
// (windows, steps*features) and the per-step integer label matrix
// (windows, steps). The time dimension must equal encodeLen.
func extractTrain(data *tensor.Dense, encodeLen int) (*mat.Dense, [][]int, error) {
	n, t, d := data.Dims()
	if t != encodeLen {
		return nil, nil, &ShapeMismatchError{EncodeLen: encodeLen, Found: t, Exact: true}
	}
	if d < minTrainCols {
		return nil, nil, fmt.Errorf("timestep: training windows need at least %d columns (ids, feature, label), found %d", minTrainCols, d)
	}

	features := d - featureCol - 1
	x := mat.NewDense(n, t*features, nil)
	y := make([][]int, n)
	for i := 0; i < n; i++ {
		y[i] = make([]int, t)
		for j := 0; j < t; j++ {
			row := data.Step(i, j)
			copy(x.RawRowView(i)[j*features:(j+1)*features], row[featureCol:d-1])
			y[i][j] = int(row[d-1])
		}
	}

	return x, y, nil
}

// extractInfer splits an inference tensor into the flattened feature matrix
// (windows, steps*features) and the (series, step) identifier pairs per
// window. The time dimension must be at least encodeLen; windows longer than
// encodeLen are truncated to their first encodeLen steps, since the
// sub-classifiers were fitted on windows of exactly that length.
func extractInfer(data *tensor.Dense, encodeLen int) (*mat.Dense, [][]stepKey, error) {
	n, t, d := data.Dims()
	if t < encodeLen {
		return nil, nil, &ShapeMismatchError{EncodeLen: encodeLen, Found: t}
	}
	if d < minInferCols {
		return nil, nil, fmt.Errorf("timestep: inference windows need at least %d columns (ids, feature), found %d", minInferCols, d)
	}

	steps := t
	if steps > encodeLen {
		steps = encodeLen
	}

	features := d - featureCol
	x := mat.NewDense(n, steps*features, nil)
	ids := make([][]stepKey, n)
	for i := 0; i < n; i++ {
		ids[i] = make([]stepKey, steps)
		for j := 0; j < steps; j++ {
			row := data.Step(i, j)
			copy(x.RawRowView(i)[j*features:(j+1)*features], row[featureCol:])
			ids[i][j] = stepKey{Series: row[seriesCol], Step: row[stepCol]}
		}
	}

	return x, ids, nil
}
