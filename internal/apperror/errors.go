// Package apperror defines the error taxonomy every route handler converts
// to an HTTP shape. Nothing propagates past a handler unclassified.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violated field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// ConflictError reports a unique-constraint violation, whether caught by the
// pre-insert check or raised by the store itself.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthenticationError is deliberately uninformative for bad credentials so
// account existence cannot be probed.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// NotConfiguredError means the backing store is unavailable or not set up.
type NotConfiguredError struct {
	Message string
}

func (e *NotConfiguredError) Error() string { return e.Message }

// StoreError wraps any other backing-store failure. Callers see a generic
// message; the wrapped cause is for logs only.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// HTTPStatus maps a taxonomy error to its response code. Unclassified errors
// fall through to 500.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		conflict   *ConflictError
		auth       *AuthenticationError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &conflict):
		return http.StatusBadRequest
	case errors.As(err, &auth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is what the caller is shown. Store failures collapse to a
// generic string; everything else carries its own message.
func PublicMessage(err error) string {
	var store *StoreError
	var notConfigured *NotConfiguredError
	switch {
	case errors.As(err, &notConfigured):
		return notConfigured.Message
	case errors.As(err, &store):
		return "Internal server error"
	default:
		return err.Error()
	}
}
