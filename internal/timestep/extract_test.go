package timestep

import (
	"errors"
	"testing"

	"github.com/go-tspc/tspc/internal/tensor"
)

// trainWindows builds two labeled windows with layout
// (series, step, f1, f2, label).
func trainWindows(t *testing.T) *tensor.Dense {
	t.Helper()
	data, err := tensor.FromSlice([][][]float64{
		{
			{1, 0, 0.1, 0.2, 0},
			{1, 1, 0.3, 0.4, 1},
			{1, 2, 0.5, 0.6, 1},
		},
		{
			{2, 0, 0.7, 0.8, 0},
			{2, 1, 0.9, 1.0, 0},
			{2, 2, 1.1, 1.2, 1},
		},
	})
	if err != nil {
		t.Fatalf("building tensor: %v", err)
	}
	return data
}

func TestExtractTrain(t *testing.T) {
	data := trainWindows(t)

	x, y, err := extractTrain(data, 3)
	if err != nil {
		t.Fatalf("the error should not be returned, got %v", err)
	}

	rows, cols := x.Dims()
	if rows != 2 || cols != 6 {
		t.Errorf("feature matrix got (%d, %d), expected (2, 6)", rows, cols)
	}
	// window 0 features are the flattened (f1, f2) pairs
	expected := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	for k, want := range expected {
		if got := x.At(0, k); got != want {
			t.Errorf("x[0][%d] got %v, expected %v", k, got, want)
		}
	}

	expectedY := [][]int{{0, 1, 1}, {0, 0, 1}}
	for i := range expectedY {
		for j := range expectedY[i] {
			if y[i][j] != expectedY[i][j] {
				t.Errorf("y[%d][%d] got %d, expected %d", i, j, y[i][j], expectedY[i][j])
			}
		}
	}
}

func TestExtractTrainShapeMismatch(t *testing.T) {
	data := trainWindows(t)

	_, _, err := extractTrain(data, 4)
	var shapeErr *ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("a shape mismatch error must be returned, got %v", err)
	}
	if shapeErr.EncodeLen != 4 || shapeErr.Found != 3 || !shapeErr.Exact {
		t.Errorf("unexpected shape error contents: %+v", shapeErr)
	}
}

func TestExtractInfer(t *testing.T) {
	// inference layout has no label column: (series, step, f1, f2)
	data, err := tensor.FromSlice([][][]float64{
		{
			{1, 0, 0.1, 0.2},
			{1, 1, 0.3, 0.4},
			{1, 2, 0.5, 0.6},
		},
	})
	if err != nil {
		t.Fatalf("building tensor: %v", err)
	}

	x, ids, err := extractInfer(data, 3)
	if err != nil {
		t.Fatalf("the error should not be returned, got %v", err)
	}

	rows, cols := x.Dims()
	if rows != 1 || cols != 6 {
		t.Errorf("feature matrix got (%d, %d), expected (1, 6)", rows, cols)
	}
	if len(ids) != 1 || len(ids[0]) != 3 {
		t.Fatalf("ids got %d windows of %d steps, expected 1 of 3", len(ids), len(ids[0]))
	}
	if ids[0][2] != (stepKey{Series: 1, Step: 2}) {
		t.Errorf("ids[0][2] got %+v, expected series 1 step 2", ids[0][2])
	}
}

func TestExtractInferTruncatesLongWindows(t *testing.T) {
	data, err := tensor.FromSlice([][][]float64{
		{
			{1, 0, 0.1, 0.2},
			{1, 1, 0.3, 0.4},
			{1, 2, 0.5, 0.6},
		},
	})
	if err != nil {
		t.Fatalf("building tensor: %v", err)
	}

	// windows longer than the encode length keep only their first steps
	x, ids, err := extractInfer(data, 2)
	if err != nil {
		t.Fatalf("the error should not be returned, got %v", err)
	}

	rows, cols := x.Dims()
	if rows != 1 || cols != 4 {
		t.Errorf("feature matrix got (%d, %d), expected (1, 4)", rows, cols)
	}
	if len(ids) != 1 || len(ids[0]) != 2 {
		t.Fatalf("ids got %d windows of %d steps, expected 1 of 2", len(ids), len(ids[0]))
	}
	if ids[0][1] != (stepKey{Series: 1, Step: 1}) {
		t.Errorf("ids[0][1] got %+v, expected series 1 step 1", ids[0][1])
	}
}

func TestExtractInferShapeMismatch(t *testing.T) {
	data, err := tensor.FromSlice([][][]float64{
		{
			{1, 0, 0.1},
			{1, 1, 0.3},
		},
	})
	if err != nil {
		t.Fatalf("building tensor: %v", err)
	}

	_, _, err = extractInfer(data, 3)
	var shapeErr *ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("a shape mismatch error must be returned, got %v", err)
	}
	if shapeErr.Exact {
		t.Errorf("inference shape error must not require an exact length")
	}
}
