// Package errors provides standardized domain errors with codes for the reviews API.
//
// Usage:
//
//	// In services - return typed errors
//	if review == nil {
//	    return errors.NotFound("review not found")
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    response.NotFound(w, err.Error(), logger)
//	    return
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound   Code = "NOT_FOUND"
	CodeValidation Code = "VALIDATION"
	CodeConflict   Code = "CONFLICT"
	CodeRateLimit  Code = "RATE_LIMITED"
	CodeInternal   Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// Sentinel errors for use with errors.Is.
var (
	ErrNotFound   = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrConflict   = &Error{Code: CodeConflict, Message: "conflict"}
	ErrRateLimit  = &Error{Code: CodeRateLimit, Message: "rate limited"}
	ErrInternal   = &Error{Code: CodeInternal, Message: "internal error"}
)

// NotFound creates a not-found error.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// ValidationWithDetails creates a validation error carrying per-field details.
func ValidationWithDetails(message string, details any) *Error {
	return &Error{Code: CodeValidation, Message: message, Details: details}
}

// Conflict creates a conflict error.
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// RateLimited creates a rate-limit error.
func RateLimited(message string) *Error {
	return &Error{Code: CodeRateLimit, Message: message}
}

// Internal creates an internal error wrapping a cause.
func Internal(message string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: message, cause: cause}
}
