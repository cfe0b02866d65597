package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes the payload as-is with a 200 status. The prediction
// contract is flat JSON, so there is no wrapping envelope.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorResponse writes the flat error envelope with the given status.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Success: false, Error: message})
}

// ValidationErrorResponse writes a 400 with the field errors joined into a
// single message, matching the contract consumed by workflow clients.
func ValidationErrorResponse(c echo.Context, errs []ValidationError) error {
	return ErrorResponse(c, http.StatusBadRequest, JoinValidationErrors(errs))
}

// AppErrorResponse writes an error response derived from an AppError,
// falling back to a generic 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr.Message)
	}
	return ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}

// JoinValidationErrors flattens field errors into one readable message.
func JoinValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return "invalid request"
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
