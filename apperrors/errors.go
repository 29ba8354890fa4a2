// Package apperrors defines the error taxonomy shared by the store, report
// and HTTP layers. Handlers map these to status codes in one place.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict marks a write that lost a race: a duplicate ledger entry
	// or an availability update clobbered by a concurrent reset.
	ErrConflict = errors.New("conflicting concurrent write")
)

// ValidationError reports caller-correctable input problems, one entry per
// offending field. It is always raised before any state is mutated.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidation builds a ValidationError from field/message pairs
func NewValidation() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records a field problem and returns the error for chaining
func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = msg
	return e
}

// Empty reports whether any field problem was recorded
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// NotFoundError means a referenced entity does not exist
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// InvalidTransitionError means the order is not in a state that admits the
// requested transition; terminal states are immutable.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

// BackendUnavailableError wraps a connectivity or timeout failure from the
// backing store, after the single internal retry has been spent.
type BackendUnavailableError struct {
	Err error
}

func (e *BackendUnavailableError) Error() string {
	return "backing store unavailable: " + e.Err.Error()
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsInvalidTransition reports whether err is (or wraps) an InvalidTransitionError
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}

// IsUnavailable reports whether err is (or wraps) a BackendUnavailableError
func IsUnavailable(err error) bool {
	var bue *BackendUnavailableError
	return errors.As(err, &bue)
}
