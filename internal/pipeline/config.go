package pipeline

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/go-tspc/tspc/internal/timestep"
)

type Config struct {
	// ConfigPath points at the TOML pipeline definition.
	ConfigPath string `envconfig:"TSPC_PIPELINE_CONFIG" default:"./tspc.toml"`
	// OutputPath is where PREDICT mode writes its predictions.
	OutputPath string `envconfig:"TSPC_OUTPUT_PATH" default:"./predictions.json"`
}

// FileConfig is the TOML pipeline definition: dataset locations, the padding
// sentinel and the classifier hyperparameters. Hyperparameter keys absent
// from the file keep their defaults.
type FileConfig struct {
	SchemaPath      string                   `toml:"schema"`
	TrainPath       string                   `toml:"train"`
	TestPath        string                   `toml:"test"`
	PaddingValue    float64                  `toml:"paddingValue"`
	Hyperparameters timestep.Hyperparameters `toml:"hyperparameters"`
}

func (c Config) LoadFile() (FileConfig, error) {
	fc := FileConfig{
		Hyperparameters: timestep.DefaultHyperparameters(),
	}
	if _, err := toml.DecodeFile(c.ConfigPath, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("pipeline: decode config %s: %w", c.ConfigPath, err)
	}
	if fc.SchemaPath == "" {
		return FileConfig{}, fmt.Errorf("pipeline: %s: schema path is not defined", c.ConfigPath)
	}

	return fc, nil
}
