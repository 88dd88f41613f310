package obs

import (
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

var (
	MPredictRequests  = stats.Int64("tspc/predict_requests", "Predict requests served", stats.UnitDimensionless)
	MPredictWindows   = stats.Int64("tspc/predict_windows", "Inference windows received", stats.UnitDimensionless)
	MPredictLatency   = stats.Float64("tspc/predict_latency", "Predict request latency", stats.UnitMilliseconds)
	MEvaluateRequests = stats.Int64("tspc/evaluate_requests", "Evaluate requests served", stats.UnitDimensionless)
)

// Views returns the stat views exported by the serving binary.
func Views() []*view.View {
	return []*view.View{
		{
			Name:        "tspc/predict_requests",
			Description: "Predict requests served",
			Measure:     MPredictRequests,
			Aggregation: view.Count(),
		},
		{
			Name:        "tspc/predict_windows",
			Description: "Inference windows received",
			Measure:     MPredictWindows,
			Aggregation: view.Sum(),
		},
		{
			Name:        "tspc/predict_latency",
			Description: "Predict request latency",
			Measure:     MPredictLatency,
			Aggregation: view.Distribution(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
		},
		{
			Name:        "tspc/evaluate_requests",
			Description: "Evaluate requests served",
			Measure:     MEvaluateRequests,
			Aggregation: view.Count(),
		},
	}
}
