package multioutput

import (
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/go-tspc/tspc/internal/predictor"
	"github.com/go-tspc/tspc/pkg/rworker"
)

// NJobs is the default worker pool size for fitting and predicting
// sub-estimators: one worker per CPU, keeping a core free.
func NJobs() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

type Option func(*Classifier)

func WithNJobs(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.njobs = n
		}
	}
}

// Classifier trains one independent estimator per output column over a
// shared feature matrix. Sub-estimators never share mutable state, so
// fitting and prediction fan out across a bounded worker pool; results are
// identical for any pool size.
type Classifier struct {
	Estimators []predictor.Estimator
	njobs      int
}

func New(outputs int, provide predictor.ProvideFn, opts ...Option) (*Classifier, error) {
	if outputs < 1 {
		return nil, fmt.Errorf("multioutput: at least 1 output required, got %d", outputs)
	}

	c := &Classifier{
		Estimators: make([]predictor.Estimator, outputs),
		njobs:      NJobs(),
	}
	for i := range c.Estimators {
		est, err := provide()
		if err != nil {
			return nil, fmt.Errorf("multioutput: provide estimator %d: %w", i, err)
		}
		c.Estimators[i] = est
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Outputs reports the number of output columns.
func (c *Classifier) Outputs() int {
	return len(c.Estimators)
}

// Fit trains every sub-estimator on x against its own column of y.
// y must be shaped (samples, outputs).
func (c *Classifier) Fit(x mat.Matrix, y [][]int) error {
	n, _ := x.Dims()
	if len(y) != n {
		return fmt.Errorf("multioutput: got %d label rows for %d samples", len(y), n)
	}
	for i, row := range y {
		if len(row) != len(c.Estimators) {
			return fmt.Errorf("multioutput: label row %d has %d outputs, expected %d", i, len(row), len(c.Estimators))
		}
	}

	var wg sync.WaitGroup
	rate := make(chan struct{}, c.njobs)
	errCh := make(chan error, 1)
	for t, est := range c.Estimators {
		t, est := t, est
		rworker.Job(&wg, func() error {
			labels := make([]int, n)
			for i := 0; i < n; i++ {
				labels[i] = y[i][t]
			}
			if err := est.Fit(x, labels); err != nil {
				return fmt.Errorf("output %d: %w", t, err)
			}
			return nil
		}, rate, errCh)
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// Predict returns hard labels shaped (samples, outputs). Workers write
// disjoint columns of the result.
func (c *Classifier) Predict(x mat.Matrix) ([][]int, error) {
	n, _ := x.Dims()
	out := make([][]int, n)
	for i := range out {
		out[i] = make([]int, len(c.Estimators))
	}

	var wg sync.WaitGroup
	rate := make(chan struct{}, c.njobs)
	errCh := make(chan error, 1)
	for t, est := range c.Estimators {
		t, est := t, est
		rworker.Job(&wg, func() error {
			labels, err := est.Predict(x)
			if err != nil {
				return fmt.Errorf("output %d: %w", t, err)
			}
			for i, label := range labels {
				out[i][t] = label
			}
			return nil
		}, rate, errCh)
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
		return out, nil
	}
}
