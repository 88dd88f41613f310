package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/go-tspc/tspc/internal/dataset"
	"github.com/go-tspc/tspc/internal/logging"
	"github.com/go-tspc/tspc/internal/schema"
	"github.com/go-tspc/tspc/internal/tensor"
	"github.com/go-tspc/tspc/internal/timestep"
)

// ClassifierProvideFn lazily loads a trained classifier facade.
type ClassifierProvideFn = func() (*timestep.TimeStepClassifier, error)

// Train fits a classifier from the pipeline definition and saves the
// artifact under modelDir. When a test dataset is configured, the trained
// model is scored on it and the weighted F1 is logged.
func Train(ctx context.Context, cfg Config, modelDir string) error {
	logger := logging.FromContext(ctx)
	fc, err := cfg.LoadFile()
	if err != nil {
		return err
	}
	if fc.TrainPath == "" {
		return fmt.Errorf("pipeline: %s: train dataset path is not defined", cfg.ConfigPath)
	}

	var (
		dataSchema *schema.TimeStepClassificationSchema
		trainData  *tensor.Dense
		testData   *tensor.Dense
	)
	grp := errgroup.Group{}
	grp.Go(func() error {
		var err error
		dataSchema, err = schema.Load(fc.SchemaPath)
		return err
	})
	grp.Go(func() error {
		var err error
		trainData, err = dataset.Load(fc.TrainPath)
		return err
	})
	if fc.TestPath != "" {
		grp.Go(func() error {
			var err error
			testData, err = dataset.Load(fc.TestPath)
			return err
		})
	}
	if err := grp.Wait(); err != nil {
		return fmt.Errorf("pipeline: load inputs: %w", err)
	}

	n, t, d := trainData.Dims()
	logger.Infof("training on %d windows of shape (%d, %d), %d classes", n, t, d, dataSchema.NumClasses())

	model, err := timestep.Train(trainData, dataSchema, fc.Hyperparameters, fc.PaddingValue)
	if err != nil {
		return err
	}
	if err := model.Save(ctx, modelDir); err != nil {
		return err
	}
	logger.Infof("saved artifact to %s", modelDir)

	if testData != nil {
		score, err := model.Evaluate(testData)
		if err != nil {
			return err
		}
		logger.Infof("weighted F1 on test split: %.4f", score)
	}

	return nil
}

// Predict scores the configured test dataset with a previously trained
// classifier and writes the aggregated records to cfg.OutputPath.
func Predict(ctx context.Context, cfg Config, provide ClassifierProvideFn) error {
	logger := logging.FromContext(ctx)
	fc, err := cfg.LoadFile()
	if err != nil {
		return err
	}
	if fc.TestPath == "" {
		return fmt.Errorf("pipeline: %s: test dataset path is not defined", cfg.ConfigPath)
	}

	model, err := provide()
	if err != nil {
		return fmt.Errorf("pipeline: load classifier: %w", err)
	}
	data, err := dataset.Load(fc.TestPath)
	if err != nil {
		return err
	}

	predictions, err := model.PredictSteps(data)
	if err != nil {
		return err
	}

	out := struct {
		Classes     []string              `json:"classes"`
		Predictions []timestep.Prediction `json:"predictions"`
	}{
		Classes:     model.Schema().TargetClasses,
		Predictions: predictions,
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("pipeline: create output %s: %w", cfg.OutputPath, err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(out); err != nil {
		return fmt.Errorf("pipeline: write output %s: %w", cfg.OutputPath, err)
	}

	logger.Infof("wrote %d prediction records to %s", len(predictions), cfg.OutputPath)
	return nil
}

// Eval scores the configured labeled test dataset with a previously trained
// classifier and logs the weighted F1.
func Eval(ctx context.Context, cfg Config, provide ClassifierProvideFn) error {
	logger := logging.FromContext(ctx)
	fc, err := cfg.LoadFile()
	if err != nil {
		return err
	}
	if fc.TestPath == "" {
		return fmt.Errorf("pipeline: %s: test dataset path is not defined", cfg.ConfigPath)
	}

	model, err := provide()
	if err != nil {
		return fmt.Errorf("pipeline: load classifier: %w", err)
	}
	data, err := dataset.Load(fc.TestPath)
	if err != nil {
		return err
	}

	score, err := model.Evaluate(data)
	if err != nil {
		return err
	}
	logger.Infof("weighted F1: %.4f", score)

	return nil
}
