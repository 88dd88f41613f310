package predict

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	ocstats "go.opencensus.io/stats"

	"github.com/go-tspc/tspc/internal/httputil"
	"github.com/go-tspc/tspc/internal/obs"
	"github.com/go-tspc/tspc/internal/tensor"
	"github.com/go-tspc/tspc/internal/timestep"
)

const maxBodyBytes = 64 * 1024 * 1024

// Classifier is the slice of the facade the handler needs.
type Classifier interface {
	PredictSteps(data *tensor.Dense) ([]timestep.Prediction, error)
}

type request struct {
	Windows [][][]float64 `json:"windows"`
}

type response struct {
	Classes     []string              `json:"classes"`
	Predictions []timestep.Prediction `json:"predictions"`
}

func NewHandler(cfg *Config, classifier Classifier, classes []string) (http.Handler, error) {
	return &handler{
		cfg:        cfg,
		classifier: classifier,
		classes:    classes,
	}, nil
}

type handler struct {
	cfg        *Config
	classifier Classifier
	classes    []string
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
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

	predictions, err := h.classifier.PredictSteps(data)
	if err != nil {
		var shapeErr *timestep.ShapeMismatchError
		if errors.As(err, &shapeErr) {
			httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, shapeErr)
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "predict processing error, %v"}`, err)
		return
	}

	ocstats.Record(ctx,
		obs.MPredictRequests.M(1),
		obs.MPredictWindows.M(int64(len(req.Windows))),
		obs.MPredictLatency.M(float64(time.Since(started).Milliseconds())),
	)
	httputil.RespJSON(ctx, w, response{Classes: h.classes, Predictions: predictions})
}
