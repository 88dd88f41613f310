package tensor

import (
	"errors"
	"fmt"
)

var ErrRaggedData = errors.New("tensor: windows must be rectangular")

// Dense is a dense 3-D tensor of shape (windows, steps, columns) backed by a
// single row-major float64 slice.
type Dense struct {
	n, t, d int
	data    []float64
}

func New(n, t, d int) *Dense {
	if n < 0 || t < 0 || d < 0 {
		panic(fmt.Sprintf("tensor: negative dimension (%d, %d, %d)", n, t, d))
	}
	return &Dense{n: n, t: t, d: d, data: make([]float64, n*t*d)}
}

// FromSlice builds a tensor from nested window slices. All windows must have
// the same number of steps and all steps the same number of columns.
func FromSlice(windows [][][]float64) (*Dense, error) {
	n := len(windows)
	if n == 0 {
		return nil, fmt.Errorf("tensor: empty input")
	}
	t := len(windows[0])
	if t == 0 {
		return nil, fmt.Errorf("tensor: window 0 has no steps")
	}
	d := len(windows[0][0])
	if d == 0 {
		return nil, fmt.Errorf("tensor: step (0, 0) has no columns")
	}

	dense := New(n, t, d)
	for i, window := range windows {
		if len(window) != t {
			return nil, fmt.Errorf("%w: window %d has %d steps, expected %d", ErrRaggedData, i, len(window), t)
		}
		for j, step := range window {
			if len(step) != d {
				return nil, fmt.Errorf("%w: step (%d, %d) has %d columns, expected %d", ErrRaggedData, i, j, len(step), d)
			}
			copy(dense.data[(i*t+j)*d:(i*t+j+1)*d], step)
		}
	}

	return dense, nil
}

// Dims returns the tensor shape as (windows, steps, columns).
func (m *Dense) Dims() (n, t, d int) {
	return m.n, m.t, m.d
}

func (m *Dense) At(i, j, k int) float64 {
	m.check(i, j, k)
	return m.data[(i*m.t+j)*m.d+k]
}

func (m *Dense) Set(i, j, k int, v float64) {
	m.check(i, j, k)
	m.data[(i*m.t+j)*m.d+k] = v
}

// Step returns the column slice of step j in window i. The slice aliases the
// tensor backing array.
func (m *Dense) Step(i, j int) []float64 {
	m.check(i, j, 0)
	return m.data[(i*m.t+j)*m.d : (i*m.t+j+1)*m.d]
}

func (m *Dense) check(i, j, k int) {
	if i < 0 || i >= m.n || j < 0 || j >= m.t || k < 0 || k >= m.d {
		panic(fmt.Sprintf("tensor: index (%d, %d, %d) out of range (%d, %d, %d)", i, j, k, m.n, m.t, m.d))
	}
}
