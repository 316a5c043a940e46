// Package apierrors defines the error taxonomy shared across domain use
// cases and the HTTP edge, so every failure carries a uniform shape.
package apierrors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorType classifies a failure for HTTP status mapping and retry policy.
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "VALIDATION_ERROR"
	ErrorTypeBusinessRule  ErrorType = "BUSINESS_RULE_ERROR"
	ErrorTypeDataIntegrity ErrorType = "DATA_INTEGRITY_ERROR"
	ErrorTypeDatabase      ErrorType = "DATABASE_ERROR"
	ErrorTypeNetwork       ErrorType = "NETWORK_ERROR"
	ErrorTypeNotFound      ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeUnauthorized  ErrorType = "UNAUTHORIZED_ERROR"
	ErrorTypeForbidden     ErrorType = "FORBIDDEN_ERROR"
	ErrorTypeInternal      ErrorType = "INTERNAL_ERROR"
)

// Error is the uniform error envelope returned by every use case and
// surfaced, filtered of internals, by the HTTP edge.
type Error struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
	Retryable  bool      `json:"retryable"`
	Timestamp  time.Time `json:"timestamp"`
	Cause      error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(t ErrorType, code, message string, status int, retryable bool, cause error) *Error {
	return &Error{
		Type:       t,
		Code:       code,
		Message:    message,
		HTTPStatus: status,
		Retryable:  retryable,
		Timestamp:  timeNow(),
		Cause:      cause,
	}
}

// timeNow is indirected so tests can observe deterministic timestamps if
// ever needed; production always uses wall-clock time.
var timeNow = time.Now

// NewValidationError wraps a value-object or shape validation failure.
func NewValidationError(code, message string, cause error) *Error {
	return newError(ErrorTypeValidation, code, message, http.StatusBadRequest, false, cause)
}

// NewBusinessRuleError wraps a policy/invariant rejection.
func NewBusinessRuleError(code, message string, cause error) *Error {
	return newError(ErrorTypeBusinessRule, code, message, http.StatusBadRequest, false, cause)
}

// NewConflictError wraps an id or optimistic-version conflict.
func NewConflictError(code, message string, cause error) *Error {
	return newError(ErrorTypeDataIntegrity, code, message, http.StatusConflict, true, cause)
}

// NewNotFoundError wraps a missing-prerequisite failure.
func NewNotFoundError(code, message string, cause error) *Error {
	return newError(ErrorTypeNotFound, code, message, http.StatusNotFound, false, cause)
}

// NewDatabaseError wraps a repository transport failure.
func NewDatabaseError(code, message string, cause error) *Error {
	return newError(ErrorTypeDatabase, code, message, http.StatusServiceUnavailable, true, cause)
}

// NewNetworkError wraps an outbound transport failure (event bus, webhook).
func NewNetworkError(code, message string, cause error) *Error {
	return newError(ErrorTypeNetwork, code, message, http.StatusServiceUnavailable, true, cause)
}

// NewUnauthorizedError wraps a missing-credential failure.
func NewUnauthorizedError(code, message string) *Error {
	return newError(ErrorTypeUnauthorized, code, message, http.StatusUnauthorized, false, nil)
}

// NewForbiddenError wraps a bad-credential failure.
func NewForbiddenError(code, message string) *Error {
	return newError(ErrorTypeForbidden, code, message, http.StatusForbidden, false, nil)
}

// NewInternalError wraps an unexpected failure; always logged at error level.
func NewInternalError(code, message string, cause error) *Error {
	return newError(ErrorTypeInternal, code, message, http.StatusInternalServerError, true, cause)
}

// As attempts to recover an *Error from a generic error, falling back to
// wrapping it as an internal error when the cause isn't already typed.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*Error); ok {
		return apiErr
	}
	return NewInternalError("unclassified_error", err.Error(), err)
}
