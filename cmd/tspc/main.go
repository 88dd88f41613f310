package main

import (
	"context"
	"fmt"

	tspc "github.com/go-tspc/tspc/internal/config"
	"github.com/go-tspc/tspc/internal/logging"
	"github.com/go-tspc/tspc/internal/pipeline"
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
	config := tspc.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}

	switch config.ModeType {
	case tspc.ModeTypeTrain:
		return pipeline.Train(ctx, config.Pipeline, config.ModelDirPath)
	case tspc.ModeTypePredict:
		return pipeline.Predict(ctx, config.Pipeline, env.ProvideClassifier())
	case tspc.ModeTypeEval:
		return pipeline.Eval(ctx, config.Pipeline, env.ProvideClassifier())
	default:
		return fmt.Errorf("unknown mode %q", config.ModeType)
	}
}
