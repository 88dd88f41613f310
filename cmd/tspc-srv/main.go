package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats/view"

	tspc "github.com/go-tspc/tspc/internal/config"
	"github.com/go-tspc/tspc/internal/evaluate"
	"github.com/go-tspc/tspc/internal/logging"
	"github.com/go-tspc/tspc/internal/obs"
	"github.com/go-tspc/tspc/internal/predict"
	"github.com/go-tspc/tspc/internal/server"
	"github.com/go-tspc/tspc/internal/setup"
	"github.com/go-tspc/tspc/internal/shutdown"
)

func main() {
	ctx, done := shutdown.New()
	defer done()

	logger := logging.FromContext(ctx)
	if err := run(ctx); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	config := tspc.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}

	classifier, err := env.ProvideClassifier()()
	if err != nil {
		return fmt.Errorf("classifier provider function error: %w", err)
	}
	logger.Infof("loaded classifier: encode length %d, %d classes",
		classifier.Params().EncodeLen, classifier.Schema().NumClasses())

	if err := view.Register(obs.Views()...); err != nil {
		return fmt.Errorf("register stat views: %w", err)
	}
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: "tspc"})
	if err != nil {
		return fmt.Errorf("create prometheus exporter: %w", err)
	}
	view.RegisterExporter(exporter)

	predictHandler, err := predict.NewHandler(config.PredictConfig(), classifier, classifier.Schema().TargetClasses)
	if err != nil {
		return fmt.Errorf("create predict handler: %w", err)
	}
	evaluateHandler, err := evaluate.NewHandler(config.EvaluateConfig(), classifier)
	if err != nil {
		return fmt.Errorf("create evaluate handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/predict", predictHandler)
	mux.Handle("/evaluate", evaluateHandler)
	mux.Handle("/metrics", exporter)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, "ok")
	})

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	logger.Infof("serving on %s", srv.Addr())

	return srv.ServeHTTP(ctx, &http.Server{Handler: mux})
}
