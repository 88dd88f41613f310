package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/go-tspc/tspc/internal/evaluate"
	"github.com/go-tspc/tspc/internal/logging"
	"github.com/go-tspc/tspc/internal/pipeline"
	"github.com/go-tspc/tspc/internal/predict"
	"github.com/go-tspc/tspc/internal/srvenv"
	"github.com/go-tspc/tspc/internal/timestep"
)

type ModeProvider interface {
	Mode() string
}

type ModelDirProvider interface {
	ModelDir() string
}

type PredictConfigProvider interface {
	PredictConfig() *predict.Config
}

type EvaluateConfigProvider interface {
	EvaluateConfig() *evaluate.Config
}

type PipelineConfigProvider interface {
	PipelineConfig() *pipeline.Config
}

// Setup processes the environment into config and assembles the server
// environment around it.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var serverEnvOpts []srvenv.Option
	if dirProvider, ok := config.(ModelDirProvider); ok {
		logger.Debug("configuring classifier provider")
		dir := dirProvider.ModelDir()
		serverEnvOpts = append(serverEnvOpts, srvenv.WithClassifier(func() (*timestep.TimeStepClassifier, error) {
			return timestep.Load(ctx, dir)
		}))
	}

	return srvenv.New(serverEnvOpts...), nil
}
