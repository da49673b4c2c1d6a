package projection

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoPayload            = errors.New("No JSON data provided")
	ErrMissingField         = errors.New("missing field")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidRiskTolerance = errors.New("invalid risk tolerance")
	ErrInvalidInterests     = errors.New("invalid interests")
	ErrUpstreamFormat       = errors.New("upstream format error")
)

// MissingFieldError names a required field that was absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// ValidationError is a field that was present but unacceptable.
// Kind is one of ErrInvalidAmount, ErrInvalidRiskTolerance, ErrInvalidInterests.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Kind }

func invalid(kind error, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// UpstreamFormatError carries the raw completion text that failed to parse.
type UpstreamFormatError struct {
	Raw string
	Err error
}

func (e *UpstreamFormatError) Error() string {
	return "Invalid JSON response from upstream: " + e.Raw
}

func (e *UpstreamFormatError) Is(target error) bool { return target == ErrUpstreamFormat }

func (e *UpstreamFormatError) Unwrap() error { return e.Err }

// StatusCode maps an error from this package to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNoPayload),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidRiskTolerance),
		errors.Is(err, ErrInvalidInterests),
		errors.Is(err, ErrUpstreamFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
