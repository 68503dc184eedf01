// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNoSubjectsFound indicates the result document yielded zero parsed
	// subjects. Fatal for that semester's processing.
	ErrNoSubjectsFound = errors.New("no subjects found in the results PDF. Please check the file")

	// ErrNoCreditsFound indicates the course document yielded zero credit
	// entries. Fatal for that semester's processing.
	ErrNoCreditsFound = errors.New("no course credits found in the course PDF. Please check the file")

	// ErrNoMatch indicates both parsers succeeded but no result record
	// could be paired with a course record.
	ErrNoMatch = errors.New("could not match any subjects between the two files. Please check that both files are for the same semester")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError represents upload validation failures, rejected before
// any processing starts.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ExtractionError represents a PDF whose text could not be extracted.
// Fatal, surfaced to the caller, never retried.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("extraction error (file=%s): %v", e.Filename, e.Err)
	}
	return fmt.Sprintf("extraction error: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new extraction error.
func NewExtractionError(filename string, err error) *ExtractionError {
	return &ExtractionError{Filename: filename, Err: err}
}

// UserMessage maps an error to the message shown to API callers. Internal
// detail stays in logs; extraction failures and unexpected errors get fixed
// generic texts.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return "Unable to extract text from the provided PDF"
	}

	switch {
	case errors.Is(err, ErrNoSubjectsFound):
		return "No subjects found in the results PDF. Please check the file."
	case errors.Is(err, ErrNoCreditsFound):
		return "No course credits found in the course PDF. Please check the file."
	case errors.Is(err, ErrNoMatch):
		return "Could not match any subjects between the two files. Please check that both files are for the same semester."
	case errors.Is(err, ErrInvalidInput):
		return err.Error()
	}

	return "An unexpected error occurred. Please try again."
}

// IsUserFacing reports whether the error carries a message safe to return
// verbatim with a 400 status (validation and parsing failures, as opposed
// to unexpected internal errors).
func IsUserFacing(err error) bool {
	var validationErr *ValidationError
	var extractionErr *ExtractionError
	return errors.As(err, &validationErr) ||
		errors.As(err, &extractionErr) ||
		errors.Is(err, ErrNoSubjectsFound) ||
		errors.Is(err, ErrNoCreditsFound) ||
		errors.Is(err, ErrNoMatch) ||
		errors.Is(err, ErrInvalidInput)
}
