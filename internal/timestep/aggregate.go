package timestep

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// aggregate collapses the per-estimator probability estimates of all
// overlapping windows into one mean probability vector per (series, step)
// pair. preds holds one (windows, classes) matrix per time-step estimator;
// ids holds the (series, step) pair for every step of every window. Steps
// whose id equals the padding value are dropped. Rows come back in
// ascending (series, step) order.
//
// All steps of one window share one series id; the id of the first step is
// taken for the whole window.
func aggregate(preds []*mat.Dense, ids [][]stepKey, paddingValue float64, numClasses int) ([]stepKey, *mat.Dense, error) {
	type accum struct {
		sum []float64
		n   int
	}
	sums := make(map[stepKey]*accum)

	for t, stepPreds := range preds {
		n, cols := stepPreds.Dims()
		if n != len(ids) {
			return nil, nil, fmt.Errorf("timestep: estimator %d predicted %d windows, expected %d", t, n, len(ids))
		}
		if cols != numClasses {
			return nil, nil, fmt.Errorf("timestep: estimator %d predicted %d classes, expected %d", t, cols, numClasses)
		}
		for i := 0; i < n; i++ {
			key := stepKey{Series: ids[i][0].Series, Step: ids[i][t].Step}
			acc, ok := sums[key]
			if !ok {
				acc = &accum{sum: make([]float64, numClasses)}
				sums[key] = acc
			}
			floats.Add(acc.sum, stepPreds.RawRowView(i))
			acc.n++
		}
	}

	keys := make([]stepKey, 0, len(sums))
	for key := range sums {
		if key.Step == paddingValue {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, nil, fmt.Errorf("timestep: no non-padding steps to aggregate")
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	probs := mat.NewDense(len(keys), numClasses, nil)
	for i, key := range keys {
		acc := sums[key]
		row := probs.RawRowView(i)
		copy(row, acc.sum)
		floats.Scale(1/float64(acc.n), row)
	}

	return keys, probs, nil
}
