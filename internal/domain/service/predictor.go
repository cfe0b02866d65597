package service

import (
	"context"
	"fmt"

	"Afluencia/internal/domain/models"
)

// Predictor is the external prediction collaborator: given a well-formed
// feature record it returns a finite afluencia score or a ModelError.
type Predictor interface {
	Predict(ctx context.Context, rec models.FeatureRecord) (float64, error)
	Name() string
	Loaded() bool
}

// Metrics records domain-level observations.
type Metrics interface {
	RecordPrediction(categoria, provincia string, score float64)
	RecordValidationFailure(endpoint string)
	RecordModelError(kind string)
	RecordModelLatency(model string, seconds float64)
	RecordCacheLookup(hit bool)
}

// ModelError kinds.
const (
	ModelErrTimeout  = "timeout"
	ModelErrUpstream = "upstream"
	ModelErrOutput   = "invalid_output"
)

// ModelError is a prediction collaborator failure.
type ModelError struct {
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("model error (%s)", e.Kind)
}

func (e *ModelError) Unwrap() error { return e.Err }

// NewModelError wraps err as a collaborator failure of the given kind.
func NewModelError(kind string, err error) *ModelError {
	return &ModelError{Kind: kind, Err: err}
}
