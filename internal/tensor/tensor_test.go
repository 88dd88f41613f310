package tensor

import (
	"errors"
	"testing"
)

func TestFromSlice(t *testing.T) {
	tests := []struct {
		name        string
		windows     [][][]float64
		expectedErr bool
	}{
		{
			name: "positive",
			windows: [][][]float64{
				{{1, 0, 0.5}, {1, 1, 0.7}},
				{{2, 0, 0.1}, {2, 1, 0.2}},
			},
		},
		{
			name: "ragged_steps",
			windows: [][][]float64{
				{{1, 0, 0.5}, {1, 1, 0.7}},
				{{2, 0, 0.1}},
			},
			expectedErr: true,
		},
		{
			name: "ragged_columns",
			windows: [][][]float64{
				{{1, 0, 0.5}, {1, 1}},
			},
			expectedErr: true,
		},
		{
			name:        "empty",
			windows:     [][][]float64{},
			expectedErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := FromSlice(test.windows)
			if test.expectedErr {
				if err == nil {
					t.Errorf("an error must be returned for invalid input")
				}
				return
			}
			if err != nil {
				t.Fatalf("the error should not be returned, got %v", err)
			}
			n, tt, d := data.Dims()
			if n != len(test.windows) || tt != len(test.windows[0]) || d != len(test.windows[0][0]) {
				t.Errorf("dims got (%d, %d, %d), expected (%d, %d, %d)",
					n, tt, d, len(test.windows), len(test.windows[0]), len(test.windows[0][0]))
			}
		})
	}
}

func TestFromSliceRaggedSentinel(t *testing.T) {
	_, err := FromSlice([][][]float64{
		{{1, 0}, {1, 1}},
		{{2, 0}},
	})
	if !errors.Is(err, ErrRaggedData) {
		t.Errorf("ragged input must return ErrRaggedData, got %v", err)
	}
}

func TestAtSetStep(t *testing.T) {
	data, err := FromSlice([][][]float64{
		{{1, 0, 0.5}, {1, 1, 0.7}},
		{{2, 0, 0.1}, {2, 1, 0.2}},
	})
	if err != nil {
		t.Fatalf("the error should not be returned, got %v", err)
	}

	if got := data.At(1, 1, 2); got != 0.2 {
		t.Errorf("At(1, 1, 2) got %v, expected 0.2", got)
	}
	data.Set(1, 1, 2, 0.9)
	if got := data.At(1, 1, 2); got != 0.9 {
		t.Errorf("At after Set got %v, expected 0.9", got)
	}

	step := data.Step(0, 1)
	if len(step) != 3 || step[0] != 1 || step[1] != 1 || step[2] != 0.7 {
		t.Errorf("Step(0, 1) got %v, expected [1 1 0.7]", step)
	}
}
