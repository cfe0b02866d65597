package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"Afluencia/internal/domain/models"
	"Afluencia/internal/domain/service"
	"Afluencia/internal/services/model"
	"Afluencia/pkg/cache"
	applogger "Afluencia/pkg/logger"
)

// PredictionUsecase runs the prediction pipeline: delegate to the
// collaborator with a bounded timeout, apply correction patterns, classify
// the corrected score and assemble the response. Stateless per request.
type PredictionUsecase struct {
	predictor  service.Predictor
	patterns   *model.Patterns
	classifier *Classifier
	metrics    service.Metrics
	logger     *applogger.Logger

	cache    cache.Service
	cacheTTL time.Duration
	timeout  time.Duration
}

// Option configures the use case.
type Option func(*PredictionUsecase)

// WithCache enables the prediction result cache.
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(u *PredictionUsecase) {
		u.cache = c
		u.cacheTTL = ttl
	}
}

// NewPredictionUsecase wires the pipeline.
func NewPredictionUsecase(
	predictor service.Predictor,
	patterns *model.Patterns,
	classifier *Classifier,
	metrics service.Metrics,
	logger *applogger.Logger,
	timeout time.Duration,
	opts ...Option,
) *PredictionUsecase {
	u := &PredictionUsecase{
		predictor:  predictor,
		patterns:   patterns,
		classifier: classifier,
		metrics:    metrics,
		logger:     logger,
		timeout:    timeout,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// PredictSimple serves the workflow-automation contract: flat score,
// category and success flag.
func (u *PredictionUsecase) PredictSimple(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResponse, error) {
	rec := req.Record()

	if u.cache != nil {
		var cached models.PredictionResponse
		if err := u.cache.Get(ctx, cacheKey(rec), &cached); err == nil {
			if u.metrics != nil {
				u.metrics.RecordCacheLookup(true)
			}
			return &cached, nil
		}
		if u.metrics != nil {
			u.metrics.RecordCacheLookup(false)
		}
	}

	corrected, _, err := u.predictAndCorrect(ctx, rec)
	if err != nil {
		return nil, err
	}

	// Classify the rounded score so afluencia and categoria always agree
	// at category boundaries.
	rounded := round2(corrected)
	cat := u.classifier.Classify(rounded)
	resp := &models.PredictionResponse{
		Afluencia: rounded,
		Categoria: cat.Label,
		Success:   true,
	}

	if u.metrics != nil {
		u.metrics.RecordPrediction(cat.Label, rec.Provincia, resp.Afluencia)
	}
	if u.cache != nil {
		_ = u.cache.Set(ctx, cacheKey(rec), resp, u.cacheTTL)
	}

	return resp, nil
}

// PredictFull serves the detailed contract with the correction breakdown.
func (u *PredictionUsecase) PredictFull(ctx context.Context, req *models.FullPredictionRequest) (*models.FullPredictionResponse, error) {
	rec := req.Record()

	corrected, corr, err := u.predictAndCorrect(ctx, rec)
	if err != nil {
		return nil, err
	}

	rounded := round2(corrected)
	cat := u.classifier.Classify(rounded)

	if u.metrics != nil {
		u.metrics.RecordPrediction(cat.Label, rec.Provincia, rounded)
	}

	return &models.FullPredictionResponse{
		Prediccion: models.PredictionDetail{
			Afluencia:      rounded,
			PrediccionBase: round2(corrected / corr.FactorTotal),
			Categoria:      cat.Label,
			Emoji:          cat.Emoji,
			Recomendacion:  cat.Recommendation,
		},
		Detalles: models.PredictionDetalles{
			Provincia:         rec.Provincia,
			DiaSemana:         rec.DiaSemanaEncoded,
			Mes:               rec.Mes,
			EsVacaciones:      rec.EsVacaciones == 1,
			FactoresAplicados: corr.Factors,
			FactorTotal:       round3(corr.FactorTotal),
		},
		Metadata: models.PredictionMetadata{
			Timestamp: time.Now().UTC(),
			Modelo:    u.predictor.Name(),
			Status:    "success",
		},
	}, nil
}

// predictAndCorrect calls the collaborator under the configured timeout and
// applies the correction patterns to its output.
func (u *PredictionUsecase) predictAndCorrect(ctx context.Context, rec models.FeatureRecord) (float64, model.CorrectionResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	start := time.Now()
	base, err := u.predictor.Predict(callCtx, rec)
	if u.metrics != nil {
		u.metrics.RecordModelLatency(u.predictor.Name(), time.Since(start).Seconds())
	}
	if err != nil {
		kind := service.ModelErrUpstream
		var merr *service.ModelError
		if errors.As(err, &merr) {
			kind = merr.Kind
		} else if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			kind = service.ModelErrTimeout
			err = service.NewModelError(kind, err)
		} else {
			err = service.NewModelError(kind, err)
		}
		if u.metrics != nil {
			u.metrics.RecordModelError(kind)
		}
		if u.logger != nil {
			u.logger.Error("prediction collaborator failed",
				applogger.Error(err),
				applogger.String("provincia", rec.Provincia),
			)
		}
		return 0, model.CorrectionResult{}, err
	}

	if math.IsNaN(base) || math.IsInf(base, 0) {
		err := service.NewModelError(service.ModelErrOutput, fmt.Errorf("non-finite score %v", base))
		if u.metrics != nil {
			u.metrics.RecordModelError(service.ModelErrOutput)
		}
		return 0, model.CorrectionResult{}, err
	}

	corr := u.patterns.Apply(base, rec.Provincia, rec.DiaSemanaEncoded, rec.EsVacaciones, rec.Mes)
	return corr.Corrected, corr, nil
}

// featureDomains maps each numeric model feature to its valid range.
var featureDomains = map[string]string{
	"Es_Feriado":                  "0..1",
	"Es_Vacaciones":               "0..1",
	"Mes":                         "1..12",
	"Dia_Semana_Encoded":          "0..6",
	"Trimestre":                   "1..4",
	"Temporada_Turistica_Encoded": "0..3",
}

// Features documents the request contract for clients. The list is derived
// from the model's feature encoding and the province catalog.
func (u *PredictionUsecase) Features() *models.FeaturesResponse {
	names := models.FeatureNames()
	specs := make([]models.FeatureSpec, 0, len(names)+1)
	for _, name := range names {
		specs = append(specs, models.FeatureSpec{Name: name, Domain: featureDomains[name]})
	}
	specs = append(specs, models.FeatureSpec{
		Name:   "provincia",
		Domain: "one of: " + strings.Join(models.ProvinceList(), ", "),
	})
	return &models.FeaturesResponse{Features: specs}
}

// Health reports model readiness for the health endpoint.
func (u *PredictionUsecase) Health() *models.HealthResponse {
	loaded := u.predictor != nil && u.predictor.Loaded()
	patterns := u.patterns != nil
	status := "healthy"
	if !loaded || !patterns {
		status = "degraded"
	}
	return &models.HealthResponse{
		Status:           status,
		ModeloCargado:    loaded,
		// The feature catalog is compiled in, so it is always available.
		FeaturesCargadas: true,
		PatronesCargados: patterns,
		Timestamp:        time.Now().UTC(),
	}
}

func cacheKey(rec models.FeatureRecord) string {
	return fmt.Sprintf("predict:%d:%d:%d:%d:%d:%d:%s",
		rec.EsFeriado, rec.EsVacaciones, rec.Mes, rec.DiaSemanaEncoded,
		rec.Trimestre, rec.TemporadaTuristicaEncoded, rec.Provincia)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
