package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/webmarks/webmarks-service/internal/middleware"
	"github.com/webmarks/webmarks-service/pkg/code"
)

// AppError is the unified application error carrying the response code,
// message, details, trace id and timestamp
type AppError struct {
	// Code response code
	Code int `json:"code"`
	// Message error message
	Message string `json:"message"`
	// Details optional error details
	Details []string `json:"details,omitempty"`
	// TraceID request trace id
	TraceID string `json:"traceId,omitempty"`
	// Cause original error, not serialized
	Cause error `json:"-"`
	// Timestamp error time
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap supports errors.Is/As chains
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates an AppError from a Code value
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithTraceID sets the trace id and returns the error for chaining
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// WithDetails sets details and returns the error for chaining
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	return e
}

// ErrorResponse converts an error into the unified JSON error response,
// attaching the request's trace id
func ErrorResponse(c *gin.Context, err error) {
	traceID := middleware.GetTraceIDFromGin(c)

	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.TraceID = traceID
		c.JSON(http.StatusOK, appErr)
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		c.JSON(http.StatusOK, &AppError{
			Code:      codeErr.Code(),
			Message:   codeErr.Msg(),
			Details:   codeErr.Details(),
			TraceID:   traceID,
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, &AppError{
		Code:      500,
		Message:   "Internal Server Error",
		TraceID:   traceID,
		Timestamp: time.Now(),
	})
}

// IsAppError checks whether err is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
