package predict

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-tspc/tspc/internal/schema"
	"github.com/go-tspc/tspc/internal/tensor"
	"github.com/go-tspc/tspc/internal/timestep"
)

func trainedClassifier(t *testing.T) *timestep.TimeStepClassifier {
	t.Helper()

	dataSchema := &schema.TimeStepClassificationSchema{
		TargetClasses: []string{"down", "up"},
	}
	params := timestep.DefaultHyperparameters()
	params.EncodeLen = 2
	params.Shuffle = false

	// layout (series, step, f1, f2, label), classes split on the sign of f1
	data := tensor.New(4, 2, 5)
	for i := 0; i < 4; i++ {
		class := float64(i % 2)
		for j := 0; j < 2; j++ {
			data.Set(i, j, 0, float64(i+1))
			data.Set(i, j, 1, float64(j))
			data.Set(i, j, 2, 4*class-2)
			data.Set(i, j, 3, 1)
			data.Set(i, j, 4, class)
		}
	}

	c, err := timestep.Train(data, dataSchema, params, -1)
	if err != nil {
		t.Fatalf("train error: %v", err)
	}
	return c
}

func newTestHandler(t *testing.T, maxWindows int) http.Handler {
	t.Helper()
	classifier := trainedClassifier(t)
	h, err := NewHandler(&Config{
		RequestTimeout: 5 * time.Second,
		MaxWindows:     maxWindows,
	}, classifier, classifier.Schema().TargetClasses)
	if err != nil {
		t.Fatalf("the error should not be returned, got %v", err)
	}
	return h
}

func TestHandlerPredict(t *testing.T) {
	h := newTestHandler(t, 16)

	body := `{"windows": [[[1, 0, 2, 1], [1, 1, 2, 1]], [[1, 1, 2, 1], [1, 2, 2, 1]]]}`
	r := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	r.Header.Set("content-type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status got %d, expected 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Classes     []string              `json:"classes"`
		Predictions []timestep.Prediction `json:"predictions"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Classes) != 2 {
		t.Errorf("got %d classes, expected 2", len(resp.Classes))
	}
	// steps 0, 1, 2 of series 1, overlap on step 1
	if len(resp.Predictions) != 3 {
		t.Fatalf("got %d prediction rows, expected 3", len(resp.Predictions))
	}
	for i, p := range resp.Predictions {
		var sum float64
		for _, v := range p.Probabilities {
			sum += v
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("row %d sums to %v, expected 1", i, sum)
		}
		if i > 0 && p.StepID <= resp.Predictions[i-1].StepID {
			t.Errorf("rows are not strictly ascending at %d", i)
		}
	}
}

func TestHandlerErrors(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		contentType  string
		body         string
		maxWindows   int
		expectedCode int
	}{
		{
			name:         "method_not_allowed",
			method:       http.MethodGet,
			contentType:  "application/json",
			body:         `{}`,
			maxWindows:   16,
			expectedCode: http.StatusMethodNotAllowed,
		},
		{
			name:         "unsupported_media_type",
			method:       http.MethodPost,
			contentType:  "text/plain",
			body:         `{}`,
			maxWindows:   16,
			expectedCode: http.StatusUnsupportedMediaType,
		},
		{
			name:         "malformed_json",
			method:       http.MethodPost,
			contentType:  "application/json",
			body:         `{"windows": [[[`,
			maxWindows:   16,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "too_many_windows",
			method:       http.MethodPost,
			contentType:  "application/json",
			body:         `{"windows": [[[1, 0, 2, 1], [1, 1, 2, 1]], [[1, 1, 2, 1], [1, 2, 2, 1]]]}`,
			maxWindows:   1,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "window_too_short",
			method:       http.MethodPost,
			contentType:  "application/json",
			body:         `{"windows": [[[1, 0, 2, 1]]]}`,
			maxWindows:   16,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := newTestHandler(t, test.maxWindows)
			r := httptest.NewRequest(test.method, "/predict", strings.NewReader(test.body))
			r.Header.Set("content-type", test.contentType)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != test.expectedCode {
				t.Errorf("status got %d, expected %d: %s", w.Code, test.expectedCode, w.Body.String())
			}
		})
	}
}
