package pa

import (
	"errors"
	"fmt"
	"math"

	"github.com/valyala/fastrand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/go-tspc/tspc/internal/predictor"
)

var _ predictor.Estimator = (*Classifier)(nil)

var (
	ErrNotFitted   = errors.New("pa: classifier is not fitted")
	ErrDimNotEqual = errors.New("pa: feature dimension does not match fitted weights")
)

const (
	MinClasses     = 2
	defaultMaxIter = 100
	defaultTol     = 1e-3
)

type Option func(*Classifier)

// WithC sets the aggressiveness parameter: the cap on the per-sample update
// step in response to a margin violation.
func WithC(c float64) Option {
	return func(p *Classifier) {
		p.C = c
	}
}

func WithMaxIter(n int) Option {
	return func(p *Classifier) {
		p.MaxIter = n
	}
}

func WithTol(tol float64) Option {
	return func(p *Classifier) {
		p.Tol = tol
	}
}

func WithShuffle(shuffle bool) Option {
	return func(p *Classifier) {
		p.Shuffle = shuffle
	}
}

// Classifier is an online margin-based linear classifier trained with the
// passive-aggressive type-I update rule. Multiclass problems are handled
// one-vs-rest: one hyperplane per class. Binary problems keep a single
// hyperplane separating class 1 from class 0.
//
// Fields are exported for serialization of fitted models.
type Classifier struct {
	K       int     `json:"numClasses"`
	C       float64 `json:"c"`
	MaxIter int     `json:"maxIter"`
	Tol     float64 `json:"tol"`
	Shuffle bool    `json:"shuffle"`

	// W holds one weight vector per hyperplane, B the matching intercepts.
	// Both are nil until Fit.
	W [][]float64 `json:"weights"`
	B []float64   `json:"intercepts"`
}

func New(numClasses int, opts ...Option) (*Classifier, error) {
	if numClasses < MinClasses {
		return nil, fmt.Errorf("pa: at least %d classes required, got %d", MinClasses, numClasses)
	}
	p := &Classifier{
		K:       numClasses,
		C:       1.0,
		MaxIter: defaultMaxIter,
		Tol:     defaultTol,
		Shuffle: true,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

func (p *Classifier) NumClasses() int {
	return p.K
}

func (p *Classifier) fitted() bool {
	return len(p.W) > 0
}

// planes reports the number of separating hyperplanes being trained.
func (p *Classifier) planes() int {
	if p.K == MinClasses {
		return 1
	}
	return p.K
}

// Fit trains the classifier from scratch. Previous weights are discarded.
func (p *Classifier) Fit(x mat.Matrix, y []int) error {
	n, d := x.Dims()
	if n == 0 {
		return fmt.Errorf("pa: no training samples")
	}
	if len(y) != n {
		return fmt.Errorf("pa: got %d labels for %d samples", len(y), n)
	}
	for i, label := range y {
		if label < 0 || label >= p.K {
			return fmt.Errorf("pa: label %d at sample %d out of range [0, %d)", label, i, p.K)
		}
	}

	planes := p.planes()
	p.W = make([][]float64, planes)
	for k := range p.W {
		p.W[k] = make([]float64, d)
	}
	p.B = make([]float64, planes)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	row := make([]float64, d)

	prevLoss := math.Inf(1)
	for iter := 0; iter < p.MaxIter; iter++ {
		if p.Shuffle {
			shuffle(order)
		}

		var sumLoss float64
		for _, i := range order {
			mat.Row(row, i, x)
			// the implicit bias feature contributes 1 to the squared norm
			norm := floats.Dot(row, row) + 1
			for k := 0; k < planes; k++ {
				target := -1.0
				if (planes == 1 && y[i] == 1) || (planes > 1 && y[i] == k) {
					target = 1.0
				}
				score := floats.Dot(p.W[k], row) + p.B[k]
				loss := 1 - target*score
				if loss <= 0 {
					continue
				}
				sumLoss += loss
				tau := math.Min(p.C, loss/norm)
				floats.AddScaled(p.W[k], tau*target, row)
				p.B[k] += tau * target
			}
		}

		avgLoss := sumLoss / float64(n*planes)
		if avgLoss == 0 || prevLoss-avgLoss < p.Tol {
			break
		}
		prevLoss = avgLoss
	}

	return nil
}

// DecisionFunction returns raw margin scores, one row per sample and one
// column per hyperplane.
func (p *Classifier) DecisionFunction(x mat.Matrix) (*mat.Dense, error) {
	if !p.fitted() {
		return nil, ErrNotFitted
	}
	n, d := x.Dims()
	if d != len(p.W[0]) {
		return nil, fmt.Errorf("%w: got %d features, fitted on %d", ErrDimNotEqual, d, len(p.W[0]))
	}

	planes := p.planes()
	scores := mat.NewDense(n, planes, nil)
	row := make([]float64, d)
	for i := 0; i < n; i++ {
		mat.Row(row, i, x)
		for k := 0; k < planes; k++ {
			scores.Set(i, k, floats.Dot(p.W[k], row)+p.B[k])
		}
	}

	return scores, nil
}

// Predict returns the hard class label for every sample: the sign of the
// margin for binary problems, the arg-max hyperplane otherwise.
func (p *Classifier) Predict(x mat.Matrix) ([]int, error) {
	scores, err := p.DecisionFunction(x)
	if err != nil {
		return nil, err
	}

	n, planes := scores.Dims()
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		if planes == 1 {
			if scores.At(i, 0) > 0 {
				labels[i] = 1
			}
			continue
		}
		labels[i] = floats.MaxIdx(scores.RawRowView(i))
	}

	return labels, nil
}

func shuffle(order []int) {
	for i := len(order) - 1; i > 0; i-- {
		j := int(fastrand.Uint32n(uint32(i + 1)))
		order[i], order[j] = order[j], order[i]
	}
}
