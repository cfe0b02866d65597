package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"Afluencia/internal/domain/models"
	"Afluencia/internal/domain/service"
	"Afluencia/internal/services/model"
	"Afluencia/pkg/cache"
	"Afluencia/pkg/config"
)

type stubPredictor struct {
	score float64
	err   error
	calls int
}

func (s *stubPredictor) Predict(_ context.Context, _ models.FeatureRecord) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.score, nil
}

func (s *stubPredictor) Name() string { return "stub" }
func (s *stubPredictor) Loaded() bool { return true }

func intp(v int) *int { return &v }

func simpleRequest() *models.PredictionRequest {
	return &models.PredictionRequest{
		EsFeriado:                 intp(0),
		EsVacaciones:              intp(1),
		Mes:                       8,
		DiaSemanaEncoded:          intp(6),
		Trimestre:                 3,
		TemporadaTuristicaEncoded: intp(2),
		Provincia:                 "PICHINCHA",
	}
}

func newUsecase(p service.Predictor, opts ...Option) *PredictionUsecase {
	return NewPredictionUsecase(
		p,
		model.DefaultPatterns(),
		NewClassifier(config.DefaultCategories()),
		nil,
		nil,
		time.Second,
		opts...,
	)
}

func TestPredictSimpleSuccess(t *testing.T) {
	stub := &stubPredictor{score: 17.6}
	uc := newUsecase(stub)

	resp, err := uc.PredictSimple(context.Background(), simpleRequest())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success")
	}
	// 17.6 * 1.15 (PICHINCHA) * 1.1 (domingo) * 1.15 (vacaciones) * 1.3 (agosto)
	if resp.Afluencia != 33.28 {
		t.Fatalf("afluencia = %v, want 33.28", resp.Afluencia)
	}
	if resp.Categoria != "ALTA" {
		t.Fatalf("categoria = %s, want ALTA", resp.Categoria)
	}
}

func TestPredictClassifiesRoundedScore(t *testing.T) {
	// EL ORO, mes 11, dia 4 and vacaciones 0 are all neutral factors, so the
	// corrected score equals the raw one. 24.998 rounds up to 25.0, which
	// sits in the ALTA bucket: the returned label must match the returned
	// score, not the unrounded one.
	stub := &stubPredictor{score: 24.998}
	uc := newUsecase(stub)

	req := &models.PredictionRequest{
		EsFeriado:                 intp(0),
		EsVacaciones:              intp(0),
		Mes:                       11,
		DiaSemanaEncoded:          intp(4),
		Trimestre:                 4,
		TemporadaTuristicaEncoded: intp(1),
		Provincia:                 "EL ORO",
	}
	resp, err := uc.PredictSimple(context.Background(), req)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if resp.Afluencia != 25.0 {
		t.Fatalf("afluencia = %v, want 25.0", resp.Afluencia)
	}
	if resp.Categoria != "ALTA" {
		t.Fatalf("categoria = %s, want ALTA for afluencia 25.0", resp.Categoria)
	}

	full, err := uc.PredictFull(context.Background(), &models.FullPredictionRequest{
		Mes:                       11,
		DiaSemanaEncoded:          4,
		Trimestre:                 4,
		TemporadaTuristicaEncoded: 1,
		Provincia:                 "EL ORO",
	})
	if err != nil {
		t.Fatalf("predict full: %v", err)
	}
	if full.Prediccion.Afluencia != 25.0 || full.Prediccion.Categoria != "ALTA" {
		t.Fatalf("full prediction disagrees with its label: %+v", full.Prediccion)
	}
}

func TestPredictSimpleModelError(t *testing.T) {
	stub := &stubPredictor{err: service.NewModelError(service.ModelErrUpstream, errors.New("down"))}
	uc := newUsecase(stub)

	_, err := uc.PredictSimple(context.Background(), simpleRequest())
	if err == nil {
		t.Fatalf("expected error")
	}
	var merr *service.ModelError
	if !errors.As(err, &merr) || merr.Kind != service.ModelErrUpstream {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPredictSimpleNonFiniteScore(t *testing.T) {
	stub := &stubPredictor{score: math.NaN()}
	uc := newUsecase(stub)

	_, err := uc.PredictSimple(context.Background(), simpleRequest())
	var merr *service.ModelError
	if !errors.As(err, &merr) || merr.Kind != service.ModelErrOutput {
		t.Fatalf("expected invalid_output model error, got %v", err)
	}
}

func TestPredictSimpleCacheShortCircuitsPredictor(t *testing.T) {
	stub := &stubPredictor{score: 17.6}
	mc := cache.NewMemoryCache()
	defer mc.Close()
	uc := newUsecase(stub, WithCache(mc, time.Minute))

	first, err := uc.PredictSimple(context.Background(), simpleRequest())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	second, err := uc.PredictSimple(context.Background(), simpleRequest())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if stub.calls != 1 {
		t.Fatalf("expected 1 predictor call, got %d", stub.calls)
	}
	if first.Afluencia != second.Afluencia || first.Categoria != second.Categoria {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestPredictFullBreakdown(t *testing.T) {
	stub := &stubPredictor{score: 17.6}
	uc := newUsecase(stub)

	req := &models.FullPredictionRequest{
		EsVacaciones:              1,
		Mes:                       8,
		DiaSemanaEncoded:          6,
		Trimestre:                 3,
		TemporadaTuristicaEncoded: 2,
		Provincia:                 "PICHINCHA",
	}
	resp, err := uc.PredictFull(context.Background(), req)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if resp.Prediccion.Afluencia != 33.28 {
		t.Fatalf("afluencia = %v", resp.Prediccion.Afluencia)
	}
	if resp.Prediccion.PrediccionBase != 17.6 {
		t.Fatalf("prediccion_base = %v, want 17.6", resp.Prediccion.PrediccionBase)
	}
	if resp.Prediccion.Categoria != "ALTA" || resp.Prediccion.Emoji == "" {
		t.Fatalf("unexpected category detail %+v", resp.Prediccion)
	}
	if resp.Detalles.FactorTotal != 1.891 {
		t.Fatalf("factor_total = %v, want 1.891", resp.Detalles.FactorTotal)
	}
	if !resp.Detalles.EsVacaciones {
		t.Fatalf("es_vacaciones should be true")
	}
	if resp.Metadata.Status != "success" || resp.Metadata.Modelo != "stub" {
		t.Fatalf("unexpected metadata %+v", resp.Metadata)
	}
}

func TestHealthReportsModelState(t *testing.T) {
	uc := newUsecase(&stubPredictor{score: 1})
	h := uc.Health()
	if h.Status != "healthy" || !h.ModeloCargado || !h.PatronesCargados || !h.FeaturesCargadas {
		t.Fatalf("unexpected health %+v", h)
	}
	if h.Timestamp.IsZero() {
		t.Fatalf("timestamp missing")
	}
}

func TestFeaturesContract(t *testing.T) {
	uc := newUsecase(&stubPredictor{score: 1})
	f := uc.Features()
	if len(f.Features) != 7 {
		t.Fatalf("expected 7 features, got %d", len(f.Features))
	}
	if f.Features[0].Name != "Es_Feriado" || f.Features[6].Name != "provincia" {
		t.Fatalf("feature order changed: %+v", f.Features)
	}
	for _, spec := range f.Features {
		if spec.Domain == "" {
			t.Fatalf("feature %s has no domain", spec.Name)
		}
	}
	if !strings.Contains(f.Features[6].Domain, "PICHINCHA") {
		t.Fatalf("provincia domain does not list the catalog: %s", f.Features[6].Domain)
	}
}
