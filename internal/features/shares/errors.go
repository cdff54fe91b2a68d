package shares

import (
	"errors"
)

var (
	// ErrShareNotFound means no record exists for the given share ID.
	// Kept distinct from ErrShareExpired so the caller can tell
	// "never existed" from "link died".
	ErrShareNotFound = errors.New("share not found")

	ErrShareExpired = errors.New("share has expired")

	ErrInvalidOTP       = errors.New("invalid OTP")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordRequired = errors.New("password required")

	// ErrStoreUnavailable wraps transient infrastructure failures so
	// callers can surface a generic retryable error.
	ErrStoreUnavailable = errors.New("storage temporarily unavailable")
)

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
