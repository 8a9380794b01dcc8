package models

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the API error envelope.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeForbidden      = "FORBIDDEN"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
	CodeTooManyRequest = "TOO_MANY_REQUESTS"
)

// AppError is the application error type carried from the service layer
// to the HTTP boundary. Code determines the HTTP status; Message is safe
// to return to the caller; Err holds the underlying cause for logs only.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to its HTTP status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError reports a malformed or semantically invalid input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewNotFoundError reports an unknown id or slug.
func NewNotFoundError(resource string, key any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, key),
	}
}

// NewConflictError reports a uniqueness violation or a blocked delete.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewAuthorizationError reports a failed role or ownership check.
func NewAuthorizationError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewAuthenticationError reports a missing or invalid identity claim.
func NewAuthenticationError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewInternalError wraps an unexpected failure. The cause is logged
// server-side; callers only ever see the generic message.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "an unexpected error occurred", Err: err}
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
