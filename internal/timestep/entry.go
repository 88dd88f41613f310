package timestep

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/go-tspc/tspc/internal/schema"
	"github.com/go-tspc/tspc/internal/tensor"
)

// Train builds a classifier from the schema and hyperparameters and fits it
// on the training tensor.
func Train(trainData *tensor.Dense, dataSchema *schema.TimeStepClassificationSchema, params Hyperparameters, paddingValue float64, opts ...Option) (*TimeStepClassifier, error) {
	c, err := New(dataSchema, paddingValue, params, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Fit(trainData); err != nil {
		return nil, err
	}

	return c, nil
}

// Predict returns the aggregated probability matrix for the inference tensor.
func Predict(c *TimeStepClassifier, data *tensor.Dense) (*mat.Dense, error) {
	return c.Predict(data)
}

// Evaluate returns the weighted F1 score over a labeled tensor.
func Evaluate(c *TimeStepClassifier, data *tensor.Dense) (float64, error) {
	return c.Evaluate(data)
}

// Save persists the classifier artifact under dirPath.
func Save(ctx context.Context, c *TimeStepClassifier, dirPath string) error {
	return c.Save(ctx, dirPath)
}
