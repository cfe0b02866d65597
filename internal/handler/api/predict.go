package api

import (
	"errors"

	"Afluencia/internal/domain/models"
	"Afluencia/internal/domain/service"
	"Afluencia/internal/usecase"
	xhttp "Afluencia/pkg/http"
	xlogger "Afluencia/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Version reported by the root endpoint.
const Version = "1.0"

// PredictionHandler exposes the afluencia prediction API over Echo.
type PredictionHandler struct {
	logger  *xlogger.Logger
	uc      *usecase.PredictionUsecase
	metrics service.Metrics
}

func NewPredictionHandler(logger *xlogger.Logger, uc *usecase.PredictionUsecase, metrics service.Metrics) *PredictionHandler {
	return &PredictionHandler{logger: logger, uc: uc, metrics: metrics}
}

func (h *PredictionHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/health", h.Health)
	e.GET("/features", h.Features)
	e.POST("/predict", h.Predict)
	e.POST("/predict/simple", h.PredictSimple)
}

// Home serves the API index.
func (h *PredictionHandler) Home(c echo.Context) error {
	return xhttp.SuccessResponse(c, &models.APIInfo{
		Mensaje: "API de Predicción de Afluencia Turística - Ecuador",
		Version: Version,
		Endpoints: map[string]string{
			"/predict":        "POST - predicción detallada de afluencia",
			"/predict/simple": "POST - predicción simple (N8N)",
			"/health":         "GET - estado de salud de la API",
			"/features":       "GET - features requeridas por el modelo",
		},
		Status: "activo",
	})
}

// Health reports liveness. Always 200: a degraded model state is carried in
// the payload, never as a transport failure.
func (h *PredictionHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.uc.Health())
}

// Features lists the model's required features and domains.
func (h *PredictionHandler) Features(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.uc.Features())
}

// PredictSimple is the strict endpoint consumed by workflow clients.
func (h *PredictionHandler) PredictSimple(c echo.Context) error {
	req := &models.PredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		if h.metrics != nil {
			h.metrics.RecordValidationFailure("/predict/simple")
		}
		return xhttp.ValidationErrorResponse(c, verr)
	}

	resp, err := h.uc.PredictSimple(c.Request().Context(), req)
	if err != nil {
		return h.modelErrorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, resp)
}

// Predict is the lenient detailed endpoint.
func (h *PredictionHandler) Predict(c echo.Context) error {
	req := &models.FullPredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		if h.metrics != nil {
			h.metrics.RecordValidationFailure("/predict")
		}
		return xhttp.ValidationErrorResponse(c, verr)
	}

	resp, err := h.uc.PredictFull(c.Request().Context(), req)
	if err != nil {
		return h.modelErrorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, resp)
}

func (h *PredictionHandler) modelErrorResponse(c echo.Context, err error) error {
	var merr *service.ModelError
	if errors.As(err, &merr) {
		switch merr.Kind {
		case service.ModelErrTimeout:
			return xhttp.AppErrorResponse(c, xhttp.UpstreamTimeoutError("prediction timed out").WithError(err))
		default:
			return xhttp.AppErrorResponse(c, xhttp.UpstreamError("prediction failed").WithError(err))
		}
	}
	h.logger.Error("unexpected prediction error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
