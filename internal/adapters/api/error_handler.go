package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherhome.app/internal/core/screen"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleError maps application errors to HTTP responses
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, screen.ErrNotStarted), stderrors.Is(err, screen.ErrStopped):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		s.logger.Error("Unhandled error", ports.F("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	var statusCode int
	message := appErr.Message

	switch appErr.Type {
	case errors.ErrorTypeValidation:
		statusCode = http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		statusCode = http.StatusNotFound
	case errors.ErrorTypePermissionDenied, errors.ErrorTypePermissionPermanentlyDenied:
		statusCode = http.StatusForbidden
	case errors.ErrorTypeConnectivityUnavailable, errors.ErrorTypeExternalAPI:
		statusCode = http.StatusServiceUnavailable
		message = "External service unavailable"
	case errors.ErrorTypeLocationTimeout:
		statusCode = http.StatusGatewayTimeout
	case errors.ErrorTypeNotificationScheduling:
		statusCode = http.StatusServiceUnavailable
		message = "Unable to schedule notification"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	if statusCode >= http.StatusInternalServerError {
		s.logger.Error("Request failed", ports.F("error", err), ports.F("status", statusCode))
	}
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	metrics, err := s.metrics.GetMetrics(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.health.CheckAll(c.Request.Context())

	status := http.StatusOK
	for _, r := range results {
		if r.Status == ports.HealthStatusUnhealthy {
			status = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(status, gin.H{"components": results})
}
