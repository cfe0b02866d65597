package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"time"

	"Afluencia/internal/domain/models"
	"Afluencia/internal/domain/service"
	"Afluencia/pkg/config"
	xhttp "Afluencia/pkg/http"
)

// HTTPPredictor delegates predictions to an external model service over
// JSON/HTTP. The wire contract: POST the feature record, receive
// {"afluencia": <float>}.
type HTTPPredictor struct {
	client   *xhttp.Client
	baseURL  string
	name     string
	retryMax int
}

type predictResponse struct {
	Afluencia float64 `json:"afluencia"`
}

// NewHTTPPredictor builds a predictor client from config.
func NewHTTPPredictor(cfg *config.Config) *HTTPPredictor {
	return &HTTPPredictor{
		client:   xhttp.NewClient(xhttp.WithTimeout(cfg.Model.Timeout)),
		baseURL:  cfg.Model.ServiceURL,
		name:     cfg.Model.Name,
		retryMax: cfg.Model.RetryMax,
	}
}

func (p *HTTPPredictor) Predict(ctx context.Context, rec models.FeatureRecord) (float64, error) {
	var resp predictResponse

	var err error
	for attempt := 1; ; attempt++ {
		err = p.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodPost,
			URL:    p.baseURL + "/predict",
			Body:   rec,
		}, &resp)
		if err == nil {
			break
		}
		if attempt >= p.retryMax {
			return 0, p.wrapError(ctx, err)
		}
		select {
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		case <-ctx.Done():
			return 0, service.NewModelError(service.ModelErrTimeout, ctx.Err())
		}
	}

	if math.IsNaN(resp.Afluencia) || math.IsInf(resp.Afluencia, 0) {
		return 0, service.NewModelError(service.ModelErrOutput,
			fmt.Errorf("non-finite afluencia %v", resp.Afluencia))
	}

	return resp.Afluencia, nil
}

func (p *HTTPPredictor) wrapError(ctx context.Context, err error) error {
	var nerr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(ctx.Err(), context.DeadlineExceeded),
		errors.As(err, &nerr) && nerr.Timeout():
		return service.NewModelError(service.ModelErrTimeout, err)
	}
	return service.NewModelError(service.ModelErrUpstream, err)
}

func (p *HTTPPredictor) Name() string { return p.name }

func (p *HTTPPredictor) Loaded() bool { return p.baseURL != "" }

var _ service.Predictor = (*HTTPPredictor)(nil)
