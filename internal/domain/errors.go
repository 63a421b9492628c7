package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// Sentinel errors of the KRADFILE loader. Typed errors in package krad
// unwrap to exactly one of these.
var (
	// ErrGrammar means the buffer does not match the line/record grammar.
	ErrGrammar = errors.New("grammar mismatch")
	// ErrUnmappedLegacyCode means a 2-byte token has no entry in the
	// legacy codepoint table.
	ErrUnmappedLegacyCode = errors.New("unmapped legacy code")
	// ErrInvalidMultibyteSequence means a 3-byte token is not a valid
	// strict multibyte sequence.
	ErrInvalidMultibyteSequence = errors.New("invalid multibyte sequence")
	// ErrUnsupportedTokenLength means a token is neither 2 nor 3 bytes long.
	ErrUnsupportedTokenLength = errors.New("unsupported token length")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
