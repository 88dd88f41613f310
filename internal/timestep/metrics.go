package timestep

// weightedF1 computes the multiclass F1 score averaged over classes,
// weighted by class support in yTrue. Classes without support, and classes
// with an undefined precision or recall, contribute 0.
func weightedF1(yTrue, yPred []int, numClasses int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}

	tp := make([]float64, numClasses)
	fp := make([]float64, numClasses)
	fn := make([]float64, numClasses)
	support := make([]float64, numClasses)
	for i, truth := range yTrue {
		pred := yPred[i]
		if truth < 0 || truth >= numClasses || pred < 0 || pred >= numClasses {
			continue
		}
		support[truth]++
		if pred == truth {
			tp[truth]++
			continue
		}
		fp[pred]++
		fn[truth]++
	}

	var total, sum float64
	for c := 0; c < numClasses; c++ {
		total += support[c]
	}
	if total == 0 {
		return 0
	}
	for c := 0; c < numClasses; c++ {
		if support[c] == 0 {
			continue
		}
		var precision, recall float64
		if tp[c]+fp[c] > 0 {
			precision = tp[c] / (tp[c] + fp[c])
		}
		if tp[c]+fn[c] > 0 {
			recall = tp[c] / (tp[c] + fn[c])
		}
		if precision+recall == 0 {
			continue
		}
		f1 := 2 * precision * recall / (precision + recall)
		sum += f1 * support[c] / total
	}

	return sum
}
