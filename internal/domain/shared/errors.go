// Package shared contains common domain types and errors that are used across
// the person and student packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrValidation is the kind of every attribute constraint violation.
	ErrValidation = errors.New("validation error")

	// ErrParse is the kind of every malformed persisted value.
	ErrParse = errors.New("parse error")

	// ErrReadOnly is returned by every mutating call on an extent view.
	ErrReadOnly = errors.New("unsupported operation: extent view is read-only")

	// Validation refinements. They always travel together with ErrValidation.
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrFutureTimestamp = errors.New("timestamp cannot be in the future")
	ErrNilValue        = errors.New("value cannot be nil")
	ErrAlreadyExists   = errors.New("already registered")

	// Parse refinements.
	ErrInvalidFormat = errors.New("invalid format")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g. "person", "student"
	Op      string // Operation that failed, e.g. "SetName", "Load"
	Kind    error  // Base error type for errors.Is() checking
	Field   string // Attribute involved, if any
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

// kinds joins several sentinel errors into a single Kind so that a
// validation error matches both ErrValidation and its refinement.
type kinds []error

func (k kinds) Error() string { return k[len(k)-1].Error() }

func (k kinds) Is(target error) bool {
	for _, err := range k {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// NewValidationError creates an ErrValidation error for a single attribute.
// reason refines the kind (ErrEmptyValue, ErrValueOutOfRange, ...) and may be nil.
func NewValidationError(domain, op, field string, reason error, message string) *DomainError {
	kind := error(ErrValidation)
	if reason != nil {
		kind = kinds{ErrValidation, reason}
	}
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Field:   field,
		Message: message,
	}
}

// NewParseError creates an ErrParse error wrapping the decoder failure.
func NewParseError(domain, op, field string, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    ErrParse,
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsParse checks if the error is a parse error.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsReadOnly checks if the error signals a mutation attempt on a read-only view.
func IsReadOnly(err error) bool {
	return errors.Is(err, ErrReadOnly)
}
