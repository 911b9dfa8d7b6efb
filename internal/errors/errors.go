package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrSourceUnavailable is returned when the corpus cannot be opened or read
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrGenerationFailed is returned when the generation collaborator fails or returns no content
	ErrGenerationFailed = errors.New("generation failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// SourceUnavailableError represents a corpus access failure with the offending path
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("corpus source unavailable: %v", e.Err)
	}
	return fmt.Sprintf("corpus source '%s' unavailable: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// NewSourceUnavailableError creates a new SourceUnavailableError
func NewSourceUnavailableError(path string, err error) *SourceUnavailableError {
	return &SourceUnavailableError{Path: path, Err: err}
}

// GenerationError represents a failed call into a text generation provider
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("generation via '%s' failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a new GenerationError
func NewGenerationError(provider string, err error) *GenerationError {
	return &GenerationError{Provider: provider, Err: err}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
