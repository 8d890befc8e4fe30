// Package domainerr defines the typed error kinds the domain services
// return: validation failures (aggregated per field), booking conflicts,
// illegal status transitions and missing records. Handlers map these to
// HTTP statuses; none of them is retryable.
package domainerr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field violation found in one pass so a
// caller sees all problems in a single round trip.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field violation.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns the error if any violations were recorded, nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validation builds a single-field ValidationError.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ConflictError reports that a requested appointment interval overlaps an
// existing active appointment for the same doctor.
type ConflictError struct {
	Message string `json:"message"`
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// StateError reports an illegal status transition.
type StateError struct {
	Current   string `json:"current"`
	Requested string `json:"requested"`
}

func (e *StateError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.Current, e.Requested)
}

func State(current, requested string) *StateError {
	return &StateError{Current: current, Requested: requested}
}

// NotFoundError reports that an identifier did not resolve to an existing,
// non-deleted record.
type NotFoundError struct {
	Resource string `json:"resource"`
	ID       string `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Payload returns the JSON body handlers respond with for a domain error.
// Validation errors carry the per-field breakdown; infrastructure errors are
// not echoed back to callers.
func Payload(err error) interface{} {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return map[string]interface{}{"message": "validation failed", "fields": ve.Fields}
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return map[string]interface{}{"message": "internal error"}
	}
	return map[string]interface{}{"message": err.Error()}
}

// HTTPStatus maps a domain error to the HTTP status handlers respond with.
// Unknown errors are treated as infrastructure failures.
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		ce *ConflictError
		se *StateError
		nf *NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.As(err, &se):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
