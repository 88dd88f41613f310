package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/go-tspc/tspc/internal/schema"
)

// Hyperparameters drive construction of the per-step sub-classifiers.
// EncodeLen is required; the remaining fields have defaults and are passed
// through to the underlying classifier untouched.
type Hyperparameters struct {
	// C caps the per-sample update step on a margin violation.
	C float64 `json:"c" toml:"c"`
	// EncodeLen is the fixed number of time steps in a training window.
	EncodeLen int `json:"encodeLen" toml:"encodeLen"`
	// MaxIter bounds the number of training passes over the data.
	MaxIter int `json:"maxIter" toml:"maxIter"`
	// Tol stops training once the per-epoch loss improvement falls below it.
	Tol float64 `json:"tol" toml:"tol"`
	// Shuffle reorders samples before every training pass.
	Shuffle bool `json:"shuffle" toml:"shuffle"`
}

// Header is the persisted artifact header: everything needed to rebuild the
// facade except the fitted sub-models, which are stored one record per step.
type Header struct {
	ID           uuid.UUID                           `json:"id"`
	CreatedAt    time.Time                           `json:"createdAt"`
	Schema       schema.TimeStepClassificationSchema `json:"schema"`
	PaddingValue float64                             `json:"paddingValue"`
	Params       Hyperparameters                     `json:"hyperparameters"`
}

func NewHeader(dataSchema schema.TimeStepClassificationSchema, paddingValue float64, params Hyperparameters) Header {
	return Header{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		Schema:       dataSchema,
		PaddingValue: paddingValue,
		Params:       params,
	}
}
