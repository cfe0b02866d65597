package model

import (
	"context"

	"Afluencia/internal/domain/models"
	"Afluencia/internal/domain/service"
)

// BaselinePredictor backs the Predictor contract with the calibration
// patterns: a per-province base score adjusted by the features the
// correction engine does not cover. It lets the service run standalone,
// without the exported model behind an HTTP collaborator.
type BaselinePredictor struct {
	patterns *Patterns
	name     string
}

// NewBaselinePredictor creates a pattern-backed predictor.
func NewBaselinePredictor(patterns *Patterns, name string) *BaselinePredictor {
	return &BaselinePredictor{patterns: patterns, name: name}
}

func (p *BaselinePredictor) Predict(_ context.Context, rec models.FeatureRecord) (float64, error) {
	score := p.patterns.BaseAfluencia(rec.Provincia)

	// Season bucket and feriado are not part of the correction factors, so
	// they shape the base prediction here.
	score *= 1 + 0.05*float64(rec.TemporadaTuristicaEncoded)
	if rec.EsFeriado == 1 {
		score *= 1.2
	}

	return score, nil
}

func (p *BaselinePredictor) Name() string { return p.name }

func (p *BaselinePredictor) Loaded() bool { return p.patterns != nil }

var _ service.Predictor = (*BaselinePredictor)(nil)
