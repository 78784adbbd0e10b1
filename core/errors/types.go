// ABOUTME: Custom error types for the crawl and analysis pipeline
// ABOUTME: Separates fatal configuration errors from recoverable fetch and model errors

package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration error. It is the only class
// that aborts a run, and it is raised before any crawl work begins.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// FetchError represents a failed robots.txt, sitemap or article request
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrNoHTTPClient is returned when a fetch is attempted without an HTTP client
var ErrNoHTTPClient = errors.New("HTTP client not configured")

// ErrEmptyBatch is returned by stores asked to write zero records
var ErrEmptyBatch = errors.New("refusing to write an empty batch")

// ErrNoStore is returned when records must be written but no store is configured
var ErrNoStore = errors.New("object store not configured")

// ModelErrorKind classifies a failure of the text analysis capability
type ModelErrorKind int

const (
	// MalformedInput means the model rejected its input
	MalformedInput ModelErrorKind = iota
	// NoOutput means the model returned nothing usable
	NoOutput
	// ResourceExhausted means the compute device ran out of memory or capacity
	ResourceExhausted
)

// String returns the kind name used in logs
func (k ModelErrorKind) String() string {
	switch k {
	case MalformedInput:
		return "malformed_input"
	case NoOutput:
		return "no_output"
	case ResourceExhausted:
		return "resource_exhausted"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching on a ModelError kind
var (
	ErrMalformedInput    = errors.New("malformed model input")
	ErrNoOutput          = errors.New("no model output produced")
	ErrResourceExhausted = errors.New("compute resources exhausted")
)

// ModelError represents a recognised model/content failure
type ModelError struct {
	Kind  ModelErrorKind
	Model string
	Err   error
}

// NewModelError builds a ModelError
func NewModelError(kind ModelErrorKind, model string, err error) *ModelError {
	return &ModelError{Kind: kind, Model: model, Err: err}
}

// Error implements the error interface
func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model %s: %s: %v", e.Model, e.Kind, e.Err)
	}
	return fmt.Sprintf("model %s: %s", e.Model, e.Kind)
}

// Unwrap returns the underlying error
func (e *ModelError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels
func (e *ModelError) Is(target error) bool {
	switch target {
	case ErrMalformedInput:
		return e.Kind == MalformedInput
	case ErrNoOutput:
		return e.Kind == NoOutput
	case ErrResourceExhausted:
		return e.Kind == ResourceExhausted
	}
	return false
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsModelError reports whether err belongs to the recognised model/content
// error class, either as a ModelError or one of its sentinels.
func IsModelError(err error) bool {
	var modelErr *ModelError
	if errors.As(err, &modelErr) {
		return true
	}
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, ErrResourceExhausted)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
