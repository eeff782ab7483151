// Package errors provides custom error types for the Midas API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Entity errors.
var (
	ErrEntityNotFound = &AppError{Code: "ENTITY_NOT_FOUND", Message: "Entity not found", StatusCode: http.StatusNotFound}
)

// Catalog errors.
var (
	ErrUnitCostNotFound = &AppError{Code: "UNIT_COST_NOT_FOUND", Message: "Unit cost not found", StatusCode: http.StatusNotFound}
	// ErrEmptyCatalog means the default region has no active entries at all:
	// the reference data was never seeded. A hard configuration error, not a
	// transient condition to retry.
	ErrEmptyCatalog = &AppError{Code: "EMPTY_CATALOG", Message: "No active unit costs configured for the default region", StatusCode: http.StatusInternalServerError}
	// ErrInvalidCatalogEntry signals a non-positive cost encountered at read
	// time. The catalog invariant cost > 0 makes this unreachable in normal
	// operation.
	ErrInvalidCatalogEntry = &AppError{Code: "INVALID_CATALOG_ENTRY", Message: "Unit cost must be positive", StatusCode: http.StatusInternalServerError}
)

// Pipeline errors.
var (
	ErrPipelineNotConfigured = &AppError{Code: "PIPELINE_NOT_CONFIGURED", Message: "Pipeline endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
	ErrInvalidAPIKey         = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrRateLimited           = &AppError{Code: "RATE_LIMITED", Message: "Refresh was triggered too recently", StatusCode: http.StatusTooManyRequests}
	ErrFeedUnavailable       = &AppError{Code: "FEED_UNAVAILABLE", Message: "Upstream wealth feed is unavailable", StatusCode: http.StatusBadGateway}
)

// Settings errors.
var (
	ErrSettingNotFound = &AppError{Code: "SETTING_NOT_FOUND", Message: "Setting not found", StatusCode: http.StatusNotFound}
)
