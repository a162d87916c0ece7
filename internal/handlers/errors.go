package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/SscSPs/travel_ledger/internal/platform/resilience"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
// @Description Error response containing a message describing the error
type ErrorResponse struct {
	Error string `json:"error" example:"resource not found"`
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrConcurrency):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrState), errors.Is(err, apperrors.ErrIntegrity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, resilience.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &appErr) && appErr.Code >= 400:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes it to the client. Server errors are
// replaced by failMsg so storage details do not leak.
func respondError(c *gin.Context, err error, failMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		logger.Error(failMsg, slog.String("error", err.Error()), slog.Int("status", status))
		msg := failMsg
		if status == http.StatusServiceUnavailable {
			msg = err.Error()
			c.Header("Retry-After", "10")
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	logger.Warn(failMsg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// badRequest answers a binding failure.
func badRequest(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}
