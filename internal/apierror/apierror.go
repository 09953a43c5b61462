// Package apierror provides standardized error response structures for the API
// and the typed domain error taxonomy used across services. All errors returned
// to clients go through this package to ensure consistency and to prevent
// leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error. Services raise exactly one Kind per failure;
// handlers map Kind to an HTTP status.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidRequest
	KindConflict
	KindInsufficientStock
	KindTransaction
)

// Error is a domain error with a client-safe Spanish detail message.
type Error struct {
	Kind   Kind
	Detail string
	// Err is the wrapped infrastructure cause, if any. Never shown to clients.
	Err error
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Detail: fmt.Sprintf(format, args...)}
}

func InvalidRequest(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidRequest, Detail: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Detail: fmt.Sprintf(format, args...)}
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInsufficientStock, Detail: fmt.Sprintf(format, args...)}
}

// Transaction wraps an infrastructure failure that aborted a transaction.
func Transaction(err error) *Error {
	return &Error{Kind: KindTransaction, Detail: "Error al procesar la transaccion", Err: err}
}

// KindOf returns the Kind of err, or 0 when err carries no taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HTTPStatus maps a domain error to its response status. Unclassified errors
// are treated as internal.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest, KindInsufficientStock:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
