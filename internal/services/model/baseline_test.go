package model

import (
	"context"
	"math"
	"testing"

	"Afluencia/internal/domain/models"
)

func record(feriado, temporada int, provincia string) models.FeatureRecord {
	return models.FeatureRecord{
		EsFeriado:                 feriado,
		EsVacaciones:              0,
		Mes:                       8,
		DiaSemanaEncoded:          6,
		Trimestre:                 3,
		TemporadaTuristicaEncoded: temporada,
		Provincia:                 provincia,
	}
}

func TestBaselinePredictDeterministic(t *testing.T) {
	p := NewBaselinePredictor(DefaultPatterns(), "baseline")

	first, err := p.Predict(context.Background(), record(0, 2, "PICHINCHA"))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := p.Predict(context.Background(), record(0, 2, "PICHINCHA"))
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		if got != first {
			t.Fatalf("not deterministic: %v vs %v", got, first)
		}
	}
}

func TestBaselinePredictFinite(t *testing.T) {
	p := NewBaselinePredictor(DefaultPatterns(), "baseline")
	for _, prov := range []string{"PICHINCHA", "GALAPAGOS", "NAPO", "UNKNOWN"} {
		got, err := p.Predict(context.Background(), record(1, 3, prov))
		if err != nil {
			t.Fatalf("predict %s: %v", prov, err)
		}
		if math.IsNaN(got) || math.IsInf(got, 0) || got <= 0 {
			t.Fatalf("predict %s = %v, want finite positive", prov, got)
		}
	}
}

func TestBaselineFeriadoRaisesScore(t *testing.T) {
	p := NewBaselinePredictor(DefaultPatterns(), "baseline")

	normal, _ := p.Predict(context.Background(), record(0, 1, "GUAYAS"))
	feriado, _ := p.Predict(context.Background(), record(1, 1, "GUAYAS"))
	if feriado <= normal {
		t.Fatalf("feriado score %v should exceed %v", feriado, normal)
	}
}

func TestBaselineLoaded(t *testing.T) {
	p := NewBaselinePredictor(DefaultPatterns(), "baseline")
	if !p.Loaded() {
		t.Fatalf("expected loaded")
	}
	if p.Name() != "baseline" {
		t.Fatalf("name = %q", p.Name())
	}
}
