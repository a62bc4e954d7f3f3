package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

func NewNotFoundError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: "Record not found",
		Detail:  detail,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

// NewAIProcessingError covers transport or model failures while talking to
// the completion provider. Malformed model output is not an error; it is
// absorbed by the documented fallback policies.
func NewAIProcessingError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "AI processing failed",
		Detail:  detail,
	}
}

// NewPersistenceError covers record store failures.
func NewPersistenceError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: "Persistence failed",
		Detail:  detail,
	}
}

// IsNotFound reports whether err is (or wraps) a not-found error.
func IsNotFound(err error) bool {
	var ce *CustomError
	return errors.As(err, &ce) && ce.Code == http.StatusNotFound
}

// IsValidation reports whether err is (or wraps) a validation error.
func IsValidation(err error) bool {
	var ce *CustomError
	return errors.As(err, &ce) && ce.Code == http.StatusBadRequest
}

// IsAIProcessing reports whether err is (or wraps) an AI processing error.
func IsAIProcessing(err error) bool {
	var ce *CustomError
	return errors.As(err, &ce) && ce.Code == http.StatusBadGateway
}
