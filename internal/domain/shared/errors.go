// Package shared contains the error kinds that are used across the domain and
// application packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base error kinds that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound = errors.New("entity not found")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")

	// Persistence errors
	ErrPersistenceRead  = errors.New("persisted data is unreadable")
	ErrPersistenceWrite = errors.New("persisted data could not be written")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "attendance", "tracker", "persistence"
	Op      string // Operation that failed, e.g., "Add", "Edit"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Attendance domain errors
var (
	ErrSubjectNotFound   = NewDomainError("attendance", "Find", ErrNotFound, "subject not found")
	ErrEmptySubjectName  = NewDomainError("attendance", "Validate", ErrEmptyValue, "subject name cannot be empty")
	ErrNegativeCount     = NewDomainError("attendance", "Validate", ErrNegativeValue, "class counts cannot be negative")
	ErrAttendedOverTotal = NewDomainError("attendance", "Validate", ErrValueOutOfRange, "attended classes cannot exceed total classes")
	ErrInvalidThreshold  = NewDomainError("attendance", "Validate", ErrValueOutOfRange, "threshold must be between 1 and 99 percent")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsPersistenceRead checks if the error comes from decoding persisted state.
func IsPersistenceRead(err error) bool {
	return errors.Is(err, ErrPersistenceRead)
}

// IsPersistenceWrite checks if the error comes from a failed durable write.
// Such errors are warnings: the in-memory state may be ahead of storage.
func IsPersistenceWrite(err error) bool {
	return errors.Is(err, ErrPersistenceWrite)
}
