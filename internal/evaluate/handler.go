package evaluate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	ocstats "go.opencensus.io/stats"

	"github.com/go-tspc/tspc/internal/httputil"
	"github.com/go-tspc/tspc/internal/obs"
	"github.com/go-tspc/tspc/internal/tensor"
	"github.com/go-tspc/tspc/internal/timestep"
)

const maxBodyBytes = 64 * 1024 * 1024

// Evaluator is the slice of the facade the handler needs.
type Evaluator interface {
	Evaluate(data *tensor.Dense) (float64, error)
}

type request struct {
	Windows [][][]float64 `json:"windows"`
}

type response struct {
	WeightedF1 float64 `json:"weightedF1"`
}

func NewHandler(cfg *Config, evaluator Evaluator) (http.Handler, error) {
	return &handler{
		cfg:       cfg,
		evaluator: evaluator,
	}, nil
}

type handler struct {
	cfg       *Config
	evaluator Evaluator
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if !httputil.RequireJSONPost(ctx, w, r) {
		return
	}

	defer r.Body.Close()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}
	if len(req.Windows) > h.cfg.MaxWindows {
		httputil.RespBadRequest(ctx, w, `{"error": "too many windows, max allowed is %d"}`, h.cfg.MaxWindows)
		return
	}

	data, err := tensor.FromSlice(req.Windows)
	if err != nil {
		httputil.RespBadRequest(ctx, w, `{"error": "invalid windows: %v"}`, err)
		return
	}

	score, err := h.evaluator.Evaluate(data)
	if err != nil {
		var shapeErr *timestep.ShapeMismatchError
		if errors.As(err, &shapeErr) {
			httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, shapeErr)
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "evaluate processing error, %v"}`, err)
		return
	}

	ocstats.Record(ctx, obs.MEvaluateRequests.M(1))
	httputil.RespJSON(ctx, w, response{WeightedF1: score})
}
