package domain

import (
	"errors"
	"sort"
	"strings"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicate       = errors.New("duplicate resource")
	ErrUnauthorized    = errors.New("not authenticated")
	ErrForbidden       = errors.New("insufficient permissions")
	ErrNoCompany       = errors.New("no company context")
	ErrConflict        = errors.New("conflict with current state")
)

// ValidationError lists every violated field of a request. Expected invalid
// input returns this; it is never thrown across the handler boundary.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a field-level validation error.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// GuardError is a state-transition guard rejection. The message is the exact
// reason shown to the caller ("Cannot unassign driver from load in transit").
type GuardError struct {
	Reason string
}

// NewGuardError wraps a guard rejection reason.
func NewGuardError(reason string) *GuardError {
	return &GuardError{Reason: reason}
}

func (e *GuardError) Error() string { return e.Reason }

// IsGuard reports whether err is a guard rejection.
func IsGuard(err error) bool {
	var ge *GuardError
	return errors.As(err, &ge)
}

// IsValidation reports whether err is a field-level validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
