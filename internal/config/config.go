package tspc

import (
	"github.com/go-tspc/tspc/internal/evaluate"
	"github.com/go-tspc/tspc/internal/pipeline"
	"github.com/go-tspc/tspc/internal/predict"
	"github.com/go-tspc/tspc/internal/setup"
)

var (
	_ setup.ModelDirProvider       = (*Config)(nil)
	_ setup.PredictConfigProvider  = (*Config)(nil)
	_ setup.EvaluateConfigProvider = (*Config)(nil)
	_ setup.PipelineConfigProvider = (*Config)(nil)
)

const (
	ModeTypeTrain   = "TRAIN"
	ModeTypePredict = "PREDICT"
	ModeTypeEval    = "EVAL"
)

type Config struct {
	ModeType     string `envconfig:"TSPC_MODE" default:"TRAIN"`
	SrvAddr      string `envconfig:"TSPC_ADDR" default:":8787"`
	ModelDirPath string `envconfig:"TSPC_MODEL_DIR" default:"./model"`
	Predict      predict.Config
	Evaluate     evaluate.Config
	Pipeline     pipeline.Config
}

func (c Config) Mode() string {
	return c.ModeType
}

func (c Config) ModelDir() string {
	return c.ModelDirPath
}

func (c Config) PredictConfig() *predict.Config {
	return &c.Predict
}

func (c Config) EvaluateConfig() *evaluate.Config {
	return &c.Evaluate
}

func (c Config) PipelineConfig() *pipeline.Config {
	return &c.Pipeline
}
