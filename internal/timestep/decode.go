package timestep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// decodeScores converts raw margin scores into per-class probabilities, one
// row per window. Binary problems carry a single score column and get a
// logistic transform; larger label sets get a max-stabilized softmax. Every
// output row sums to 1.
func decodeScores(scores *mat.Dense, numClasses int) (*mat.Dense, error) {
	n, cols := scores.Dims()

	if numClasses == 2 {
		if cols != 1 {
			return nil, fmt.Errorf("timestep: binary decode expects 1 score column, got %d", cols)
		}
		probs := mat.NewDense(n, 2, nil)
		for i := 0; i < n; i++ {
			p := sigmoid(scores.At(i, 0))
			probs.Set(i, 0, 1-p)
			probs.Set(i, 1, p)
		}
		return probs, nil
	}

	if cols != numClasses {
		return nil, fmt.Errorf("timestep: decode expects %d score columns, got %d", numClasses, cols)
	}
	probs := mat.NewDense(n, numClasses, nil)
	for i := 0; i < n; i++ {
		row := probs.RawRowView(i)
		copy(row, scores.RawRowView(i))
		softmax(row)
	}

	return probs, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// softmax normalizes in place, subtracting the row max before
// exponentiating for numeric stability.
func softmax(row []float64) {
	max := floats.Max(row)
	for i, v := range row {
		row[i] = math.Exp(v - max)
	}
	floats.Scale(1/floats.Sum(row), row)
}
