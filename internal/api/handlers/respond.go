package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resumatch/internal/logging"
	"resumatch/pkg/models"
	"resumatch/pkg/utils"
)

// requestID returns the id set by the validation middleware, minting one
// if the middleware did not run
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

// writeError maps pipeline errors onto HTTP responses. Known application
// errors keep their status and message; anything unexpected is logged and
// reported as a generic internal failure, never leaked verbatim.
func writeError(c echo.Context, reqID string, err error) error {
	var ce *utils.CustomError
	if errors.As(err, &ce) {
		return c.JSON(ce.Code, models.ErrorResponse{
			Error:     errorCode(ce.Code),
			Message:   ce.Error(),
			RequestID: reqID,
			Timestamp: time.Now(),
		})
	}

	logging.LogWithRequestID(reqID).Error("Unexpected error", map[string]interface{}{
		"error": err.Error(),
	})
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "internal_error",
		Message:   "Internal failure",
		RequestID: reqID,
		Timestamp: time.Now(),
	})
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_failed"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadGateway:
		return "ai_processing_failed"
	default:
		return "internal_error"
	}
}

func badRequest(c echo.Context, reqID, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "invalid_request",
		Message:   message,
		RequestID: reqID,
		Timestamp: time.Now(),
	})
}
