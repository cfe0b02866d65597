package model

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"Afluencia/internal/domain/models"
	"Afluencia/internal/domain/service"
	"Afluencia/pkg/config"
)

func httpPredictorFor(t *testing.T, url string) *HTTPPredictor {
	t.Helper()
	cfg := &config.Config{}
	cfg.Environment = "test"
	cfg.Model.Type = "http"
	cfg.Model.Name = "remote"
	cfg.Model.ServiceURL = url
	cfg.Model.Timeout = 500 * time.Millisecond
	cfg.Model.RetryMax = 3
	return NewHTTPPredictor(cfg)
}

func TestHTTPPredictorSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var rec models.FeatureRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			t.Errorf("decode: %v", err)
		}
		if rec.Provincia != "PICHINCHA" || rec.Mes != 8 {
			t.Errorf("feature record not forwarded intact: %+v", rec)
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"afluencia": 28.5})
	}))
	defer srv.Close()

	p := httpPredictorFor(t, srv.URL)
	got, err := p.Predict(context.Background(), models.FeatureRecord{Provincia: "PICHINCHA", Mes: 8})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got != 28.5 {
		t.Fatalf("score = %v, want 28.5", got)
	}
}

func TestHTTPPredictorUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := httpPredictorFor(t, srv.URL)
	_, err := p.Predict(context.Background(), models.FeatureRecord{Provincia: "GUAYAS"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var merr *service.ModelError
	if !errors.As(err, &merr) {
		t.Fatalf("expected ModelError, got %T", err)
	}
	if merr.Kind != service.ModelErrUpstream {
		t.Fatalf("kind = %s, want %s", merr.Kind, service.ModelErrUpstream)
	}
}

func TestHTTPPredictorRetriesTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"afluencia": 12.0})
	}))
	defer srv.Close()

	p := httpPredictorFor(t, srv.URL)
	got, err := p.Predict(context.Background(), models.FeatureRecord{Provincia: "LOJA"})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got != 12.0 {
		t.Fatalf("score = %v, want 12", got)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestHTTPPredictorTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	p := httpPredictorFor(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := p.Predict(ctx, models.FeatureRecord{Provincia: "MANABI"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var merr *service.ModelError
	if !errors.As(err, &merr) {
		t.Fatalf("expected ModelError, got %T", err)
	}
	if merr.Kind != service.ModelErrTimeout {
		t.Fatalf("kind = %s, want %s", merr.Kind, service.ModelErrTimeout)
	}
}

func TestHTTPPredictorNonFiniteScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// overflows float64 on decode
		_, _ = w.Write([]byte(`{"afluencia": 1e999}`))
	}))
	defer srv.Close()

	p := httpPredictorFor(t, srv.URL)
	_, err := p.Predict(context.Background(), models.FeatureRecord{Provincia: "NAPO"})
	if err == nil {
		t.Fatalf("expected error for non-finite score")
	}
}
