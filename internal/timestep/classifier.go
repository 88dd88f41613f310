package timestep

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/go-tspc/tspc/internal/database"
	"github.com/go-tspc/tspc/internal/logging"
	"github.com/go-tspc/tspc/internal/predictor"
	"github.com/go-tspc/tspc/internal/predictor/multioutput"
	"github.com/go-tspc/tspc/internal/predictor/pa"
	"github.com/go-tspc/tspc/internal/schema"
	"github.com/go-tspc/tspc/internal/tensor"
	timestepDb "github.com/go-tspc/tspc/internal/timestep/database"
	"github.com/go-tspc/tspc/internal/timestep/model"
)

// PredictorFileName is the fixed name of the artifact file inside the
// model directory.
const PredictorFileName = "predictor.joblib"

// Hyperparameters drive the per-step sub-classifiers; see model.Hyperparameters.
type Hyperparameters = model.Hyperparameters

func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		C:       1.0,
		MaxIter: 100,
		Tol:     1e-3,
		Shuffle: true,
	}
}

// Prediction is one aggregated output row: the mean class probability
// vector for a (series, step) pair, with the name of the most probable
// class.
type Prediction struct {
	SeriesID      float64   `json:"seriesId"`
	StepID        float64   `json:"stepId"`
	Label         string    `json:"label"`
	Probabilities []float64 `json:"probabilities"`
}

type Option func(*TimeStepClassifier)

// WithNJobs overrides the worker pool size used to fit and run the
// per-step sub-classifiers.
func WithNJobs(n int) Option {
	return func(c *TimeStepClassifier) {
		if n > 0 {
			c.njobs = n
		}
	}
}

// TimeStepClassifier predicts a class label for every time step of a
// fixed-length encoding window. It owns one margin-based linear
// sub-classifier per window position inside a multi-output wrapper, and is
// the sole mutator of that model and of its trained state.
type TimeStepClassifier struct {
	dataSchema   *schema.TimeStepClassificationSchema
	params       Hyperparameters
	paddingValue float64
	njobs        int

	model   *multioutput.Classifier
	trained bool
}

func New(dataSchema *schema.TimeStepClassificationSchema, paddingValue float64, params Hyperparameters, opts ...Option) (*TimeStepClassifier, error) {
	if dataSchema == nil {
		return nil, fmt.Errorf("timestep: data schema is not defined")
	}
	if dataSchema.NumClasses() < 2 {
		return nil, fmt.Errorf("timestep: schema defines %d target classes, at least 2 required", dataSchema.NumClasses())
	}
	if params.EncodeLen < 1 {
		return nil, fmt.Errorf("timestep: encode length %d is not positive", params.EncodeLen)
	}

	c := &TimeStepClassifier{
		dataSchema:   dataSchema,
		params:       params,
		paddingValue: paddingValue,
		njobs:        multioutput.NJobs(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Schema returns the classification schema the classifier was built with.
func (c *TimeStepClassifier) Schema() *schema.TimeStepClassificationSchema {
	return c.dataSchema
}

// Params returns the construction hyperparameters.
func (c *TimeStepClassifier) Params() Hyperparameters {
	return c.params
}

// Trained reports whether Fit has completed successfully.
func (c *TimeStepClassifier) Trained() bool {
	return c.trained
}

func (c *TimeStepClassifier) provideEstimator() (predictor.Estimator, error) {
	return pa.New(
		c.dataSchema.NumClasses(),
		pa.WithC(c.params.C),
		pa.WithMaxIter(c.params.MaxIter),
		pa.WithTol(c.params.Tol),
		pa.WithShuffle(c.params.Shuffle),
	)
}

// Fit trains one sub-classifier per window position on the training tensor.
// Calling Fit on a trained classifier retrains from scratch.
func (c *TimeStepClassifier) Fit(data *tensor.Dense) error {
	x, y, err := extractTrain(data, c.params.EncodeLen)
	if err != nil {
		return err
	}

	m, err := multioutput.New(c.params.EncodeLen, c.provideEstimator, multioutput.WithNJobs(c.njobs))
	if err != nil {
		return err
	}
	if err := m.Fit(x, y); err != nil {
		return fmt.Errorf("timestep: fit: %w", err)
	}

	c.model = m
	c.trained = true
	return nil
}

// PredictSteps runs the inference tensor through every sub-classifier,
// decodes the margin scores into probabilities and aggregates overlapping
// windows into one record per non-padding (series, step) pair, in
// ascending (series, step) order.
func (c *TimeStepClassifier) PredictSteps(data *tensor.Dense) ([]Prediction, error) {
	if !c.trained {
		return nil, ErrNotFitted
	}

	x, ids, err := extractInfer(data, c.params.EncodeLen)
	if err != nil {
		return nil, err
	}

	numClasses := c.dataSchema.NumClasses()
	preds := make([]*mat.Dense, 0, c.model.Outputs())
	for t, est := range c.model.Estimators {
		scores, err := est.DecisionFunction(x)
		if err != nil {
			return nil, fmt.Errorf("timestep: decision scores for step %d: %w", t, err)
		}
		probs, err := decodeScores(scores, numClasses)
		if err != nil {
			return nil, err
		}
		preds = append(preds, probs)
	}

	keys, probs, err := aggregate(preds, ids, c.paddingValue, numClasses)
	if err != nil {
		return nil, err
	}

	out := make([]Prediction, len(keys))
	for i, key := range keys {
		row := make([]float64, numClasses)
		copy(row, probs.RawRowView(i))
		label, err := c.dataSchema.ClassName(floats.MaxIdx(row))
		if err != nil {
			return nil, err
		}
		out[i] = Prediction{SeriesID: key.Series, StepID: key.Step, Label: label, Probabilities: row}
	}

	return out, nil
}

// Predict returns the aggregated probability matrix: one row per
// non-padding (series, step) pair, one column per target class.
func (c *TimeStepClassifier) Predict(data *tensor.Dense) (*mat.Dense, error) {
	records, err := c.PredictSteps(data)
	if err != nil {
		return nil, err
	}

	probs := mat.NewDense(len(records), c.dataSchema.NumClasses(), nil)
	for i, record := range records {
		probs.SetRow(i, record.Probabilities)
	}

	return probs, nil
}

// Evaluate computes the weighted multiclass F1 score of hard-label
// predictions over a labeled tensor shaped like the training data. All
// flattened (window, step) pairs count, padding steps included; this
// mirrors training, where padded steps carry labels too.
func (c *TimeStepClassifier) Evaluate(data *tensor.Dense) (float64, error) {
	if !c.trained {
		return 0, ErrNotFitted
	}

	x, y, err := extractTrain(data, c.params.EncodeLen)
	if err != nil {
		return 0, err
	}
	predicted, err := c.model.Predict(x)
	if err != nil {
		return 0, fmt.Errorf("timestep: evaluate: %w", err)
	}

	var yTrue, yPred []int
	for i := range y {
		yTrue = append(yTrue, y[i]...)
		yPred = append(yPred, predicted[i]...)
	}

	return weightedF1(yTrue, yPred, c.dataSchema.NumClasses()), nil
}

// Save persists the full classifier state to dirPath/predictor.joblib,
// creating the directory if needed. The artifact holds a header plus one
// record per fitted sub-classifier.
func (c *TimeStepClassifier) Save(ctx context.Context, dirPath string) error {
	if !c.trained {
		return ErrNotFitted
	}

	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("timestep: create model dir %s: %w", dirPath, err)
	}

	estimators := make([][]byte, 0, c.model.Outputs())
	for t, est := range c.model.Estimators {
		paEst, ok := est.(*pa.Classifier)
		if !ok {
			return fmt.Errorf("timestep: estimator %d has unexpected type %T", t, est)
		}
		payload, err := json.Marshal(paEst)
		if err != nil {
			return fmt.Errorf("timestep: marshal estimator %d: %w", t, err)
		}
		estimators = append(estimators, payload)
	}

	db, err := database.Open(ctx, filepath.Join(dirPath, PredictorFileName))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(ctx); err != nil {
			logging.FromContext(ctx).Errorf("timestep: close artifact db: %v", err)
		}
	}()

	header := model.NewHeader(*c.dataSchema, c.paddingValue, c.params)
	if err := timestepDb.New(db).StoreArtifact(ctx, header, estimators); err != nil {
		return fmt.Errorf("timestep: store artifact: %w", err)
	}

	return nil
}

// Load restores a classifier saved with Save, ready for Predict and
// Evaluate without re-fitting.
func Load(ctx context.Context, dirPath string) (*TimeStepClassifier, error) {
	path := filepath.Join(dirPath, PredictorFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("timestep: artifact %s: %w", path, err)
	}

	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := db.Close(ctx); err != nil {
			logging.FromContext(ctx).Errorf("timestep: close artifact db: %v", err)
		}
	}()

	header, payloads, err := timestepDb.New(db).LoadArtifact(ctx)
	if err != nil {
		return nil, fmt.Errorf("timestep: load artifact: %w", err)
	}
	if len(payloads) != header.Params.EncodeLen {
		return nil, fmt.Errorf("timestep: artifact holds %d estimators, header expects %d", len(payloads), header.Params.EncodeLen)
	}

	dataSchema := header.Schema
	c, err := New(&dataSchema, header.PaddingValue, header.Params)
	if err != nil {
		return nil, err
	}

	estimators := make([]predictor.Estimator, len(payloads))
	for t, payload := range payloads {
		est := &pa.Classifier{}
		if err := json.Unmarshal(payload, est); err != nil {
			return nil, fmt.Errorf("timestep: unmarshal estimator %d: %w", t, err)
		}
		estimators[t] = est
	}

	m, err := multioutput.New(len(estimators), c.provideEstimator, multioutput.WithNJobs(c.njobs))
	if err != nil {
		return nil, err
	}
	m.Estimators = estimators

	c.model = m
	c.trained = true
	return c, nil
}
