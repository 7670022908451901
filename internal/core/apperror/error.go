// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal     = "INTERNAL_ERROR"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeTimeout      = "TIMEOUT_ERROR"
	CodeNotSupported = "NOT_SUPPORTED"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Authorization errors (401, 403)
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeOutsideWorkingHours = "OUTSIDE_WORKING_HOURS"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict        = "CONFLICT"
	CodeAlreadyAnswered = "CONFIRMATION_ALREADY_ANSWERED"
)

// AppError is the standard error type for the service.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field names, upstream status, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewOutsideWorkingHours is returned by the working hours guard.
func NewOutsideWorkingHours(openHour, closeHour int) *AppError {
	return &AppError{
		Code:       CodeOutsideWorkingHours,
		Message:    fmt.Sprintf("service hours are %02d:00 to %02d:59", openHour, closeHour),
		HTTPStatus: http.StatusForbidden,
		Details:    map[string]any{"open_hour": openHour, "close_hour": closeHour},
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewAlreadyAnswered is returned when a confirmation is resolved a second time.
func NewAlreadyAnswered(id string) *AppError {
	return &AppError{
		Code:       CodeAlreadyAnswered,
		Message:    "Confirmation was already answered",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"confirmation_id": id},
	}
}

// NewNotSupported creates an error for operations the configured backend cannot perform (501)
func NewNotSupported(message string) *AppError {
	return &AppError{
		Code:       CodeNotSupported,
		Message:    message,
		HTTPStatus: http.StatusNotImplemented,
	}
}

// NewUpstream creates an error for a failed call to the business backend (502)
func NewUpstream(err error) *AppError {
	return &AppError{
		Code:       CodeUpstream,
		Message:    "Backend request failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// FromUpstreamStatus translates a backend HTTP failure into an AppError.
// message is the backend's own message, if it sent one.
func FromUpstreamStatus(status int, message string) *AppError {
	var appErr *AppError
	switch status {
	case http.StatusBadRequest:
		if message == "" {
			message = "Validation error"
		}
		appErr = NewValidation(message)
	case http.StatusUnauthorized:
		appErr = NewUnauthorized("You must sign in")
	case http.StatusForbidden:
		appErr = NewForbidden("You do not have permission for this action")
	case http.StatusNotFound:
		appErr = &AppError{
			Code:       CodeNotFound,
			Message:    "Resource not found",
			HTTPStatus: http.StatusNotFound,
		}
	default:
		appErr = NewUpstream(fmt.Errorf("backend responded %d: %s", status, message))
	}
	return appErr.WithDetail("upstream_status", status)
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}
