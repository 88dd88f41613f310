package predictor

import (
	"gonum.org/v1/gonum/mat"
)

// ProvideFn builds a fresh, unfitted estimator. The multi-output wrapper
// calls it once per time-step output.
type ProvideFn func() (Estimator, error)

// Estimator is a trainable multiclass classifier over a shared feature
// matrix. Labels are integer class indices in [0, NumClasses).
type Estimator interface {
	// Fit trains the estimator from scratch on the given samples.
	Fit(x mat.Matrix, y []int) error
	// Predict returns the hard class label for every row of x.
	Predict(x mat.Matrix) ([]int, error)
	// DecisionFunction returns the raw margin scores for every row of x.
	// The result has one column per separating hyperplane: a single column
	// for binary problems, NumClasses columns otherwise.
	DecisionFunction(x mat.Matrix) (*mat.Dense, error)
	// NumClasses reports the size of the label set.
	NumClasses() int
}
