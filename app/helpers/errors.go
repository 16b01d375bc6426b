package helpers

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates the requested id does not resolve to a row.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a malformed payload or an unresolved foreign key.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence indicates a commit that changed nothing or a storage error.
	ErrPersistence = errors.New("persistence failure")
	// ErrUnauthorized indicates a credential mismatch.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRegistrationFailed is the only error Register reports to callers.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrTooManyAttempts indicates the login limiter rejected the attempt.
	ErrTooManyAttempts = errors.New("too many login attempts")
	// ErrInternal covers everything else.
	ErrInternal = errors.New("internal error")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
