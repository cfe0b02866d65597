package di

import (
	"fmt"

	"Afluencia/internal/domain/service"
	"Afluencia/internal/handler/api"
	"Afluencia/internal/services/model"
	"Afluencia/internal/usecase"
	"Afluencia/pkg/cache"
	"Afluencia/pkg/config"
	xhttp "Afluencia/pkg/http"
	applogger "Afluencia/pkg/logger"
	"Afluencia/pkg/metrics"
	"Afluencia/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() service.Metrics {
	return metrics.New()
}

// ProvidePatterns loads the correction patterns.
func ProvidePatterns(cfg *config.Config) (*model.Patterns, error) {
	p, err := model.LoadPatterns(cfg.Model.PatternsPath)
	if err != nil {
		return nil, fmt.Errorf("patterns: %w", err)
	}
	return p, nil
}

// ProvidePredictor creates the prediction collaborator selected by config.
func ProvidePredictor(cfg *config.Config, patterns *model.Patterns) (service.Predictor, error) {
	switch cfg.Model.Type {
	case "http":
		return model.NewHTTPPredictor(cfg), nil
	case "patterns":
		return model.NewBaselinePredictor(patterns, cfg.Model.Name), nil
	default:
		return nil, fmt.Errorf("unknown model type %q", cfg.Model.Type)
	}
}

// ProvideClassifier builds the category classifier from config.
func ProvideClassifier(cfg *config.Config) *usecase.Classifier {
	return usecase.NewClassifier(cfg.Categories)
}

// ProvideCache creates the prediction result cache, or nil when disabled.
// With Redis enabled it layers memory in front; otherwise memory only.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.Service {
	if !cfg.Cache.Enabled {
		return nil
	}

	if cfg.Cache.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			l.Warn("redis unavailable, falling back to memory cache", applogger.Error(err))
		} else {
			return cache.NewLayeredCache(rc,
				cache.WithLayeredMemorySize(cfg.Cache.MaxSize),
				cache.WithLayeredTTL(cfg.Cache.TTL),
			)
		}
	}

	return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MaxSize))
}

// ProvideUsecase wires the prediction pipeline.
func ProvideUsecase(
	cfg *config.Config,
	predictor service.Predictor,
	patterns *model.Patterns,
	classifier *usecase.Classifier,
	m service.Metrics,
	l *applogger.Logger,
	c cache.Service,
) *usecase.PredictionUsecase {
	opts := []usecase.Option{}
	if c != nil {
		opts = append(opts, usecase.WithCache(c, cfg.Cache.TTL))
	}
	return usecase.NewPredictionUsecase(predictor, patterns, classifier, m, l, cfg.Model.Timeout, opts...)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *applogger.Logger, uc *usecase.PredictionUsecase, m service.Metrics) xhttp.Handler {
	return api.NewPredictionHandler(l, uc, m)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler, c cache.Service) *server.App {
	return server.New(cfg, l, h, c)
}
