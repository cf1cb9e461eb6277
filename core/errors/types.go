// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// ErrTrainingInProgress is returned when a training run is requested while
// another run is already executing. The existing run is left untouched.
var ErrTrainingInProgress = errors.New("training already in progress")

// TransientLookupError represents a per-item metadata resolution failure.
// These are absorbed by the training loop: logged, skipped, never fatal.
type TransientLookupError struct {
	ContentID string
	Err       error
}

// Error implements the error interface
func (e *TransientLookupError) Error() string {
	return fmt.Sprintf("metadata lookup failed for %s: %v", e.ContentID, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransientLookupError) Unwrap() error {
	return e.Err
}

// SourceFailureError represents a whole-pipeline failure (history source or
// storage unreachable). It aborts the run and surfaces to the caller.
type SourceFailureError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *SourceFailureError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause
func (e *SourceFailureError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsTransientLookup checks if an error is a TransientLookupError
func IsTransientLookup(err error) bool {
	var lookupErr *TransientLookupError
	return errors.As(err, &lookupErr)
}

// IsSourceFailure checks if an error is a SourceFailureError
func IsSourceFailure(err error) bool {
	var sourceErr *SourceFailureError
	return errors.As(err, &sourceErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsTrainingInProgress checks if an error is the concurrent-training rejection
func IsTrainingInProgress(err error) bool {
	return errors.Is(err, ErrTrainingInProgress)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
