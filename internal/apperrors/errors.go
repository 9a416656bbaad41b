package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced account, transaction, or journal
// entry does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidState indicates a transition attempted against a transaction that
// is no longer pending. Deterministic: never retried.
var ErrInvalidState = errors.New("invalid state transition")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates an operation refused because of conflicting resource
// state, e.g. closing an account that still has pending transactions.
var ErrConflict = errors.New("conflicting resource state")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStorage indicates the underlying store was unavailable, timed out, or hit
// a constraint violation. Callers may retry when no durable state was touched.
var ErrStorage = errors.New("storage error")

// AppError wraps an underlying error with an HTTP-ish status code and a
// human-readable message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewStorageError wraps a store-level failure so callers can detect it with
// errors.Is(err, ErrStorage).
func NewStorageError(message string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, message, err)
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
