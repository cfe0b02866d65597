package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements the domain metrics interface using Prometheus.
type Recorder struct {
	predictions     *prometheus.CounterVec
	validationFails *prometheus.CounterVec
	modelErrors     *prometheus.CounterVec
	modelLatency    *prometheus.HistogramVec
	lastAfluencia   *prometheus.GaugeVec
	cacheHits       *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afluencia_predictions_total",
				Help: "Total number of successful predictions",
			},
			[]string{"categoria", "provincia"},
		),
		validationFails: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afluencia_validation_failures_total",
				Help: "Total number of rejected prediction requests",
			},
			[]string{"endpoint"},
		),
		modelErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afluencia_model_errors_total",
				Help: "Total number of prediction collaborator failures",
			},
			[]string{"kind"},
		),
		modelLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "afluencia_model_duration_seconds",
				Help:    "Duration of prediction collaborator calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
		lastAfluencia: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "afluencia_last_score",
				Help: "Last predicted afluencia score per province",
			},
			[]string{"provincia"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afluencia_cache_requests_total",
				Help: "Prediction cache lookups by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordPrediction records a completed prediction.
func (r *Recorder) RecordPrediction(categoria, provincia string, score float64) {
	r.predictions.WithLabelValues(categoria, provincia).Inc()
	r.lastAfluencia.WithLabelValues(provincia).Set(score)
}

// RecordValidationFailure records a rejected request.
func (r *Recorder) RecordValidationFailure(endpoint string) {
	r.validationFails.WithLabelValues(endpoint).Inc()
}

// RecordModelError records a collaborator failure by kind.
func (r *Recorder) RecordModelError(kind string) {
	r.modelErrors.WithLabelValues(kind).Inc()
}

// RecordModelLatency records collaborator call latency in seconds.
func (r *Recorder) RecordModelLatency(model string, seconds float64) {
	r.modelLatency.WithLabelValues(model).Observe(seconds)
}

// RecordCacheLookup records a cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheHits.WithLabelValues(outcome).Inc()
}
