package domain

import (
	"errors"
	"fmt"
)

// Authentication errors. ErrInvalidCredentials and ErrInvalidToken are
// deliberately generic: the caller must not be able to tell which step failed.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
)

// Authorization errors. Identity is already proven here, so the message can be specific.
var (
	ErrAccountDisabled = errors.New("account is disabled")
)

// Conflict errors from uniqueness constraints.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrLogDateTaken  = errors.New("a log already exists for this date")
)

// ErrNotFound covers both a missing resource and a resource owned by another
// user. The two cases are indistinguishable to the caller.
var ErrNotFound = errors.New("resource not found")

// ValidationError reports a malformed input with field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
