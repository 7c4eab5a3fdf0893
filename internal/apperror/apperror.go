// Package apperror defines the application's error taxonomy.
//
// Every layer returns errors wrapping one of the sentinel values below, so
// callers can classify failures with errors.Is() without knowing which layer
// produced them. The HTTP layer maps each class to a status code in exactly
// one place (handler.writeError).
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced id has no corresponding row.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the client sent a payload that is missing a
	// required field, has a wrongly typed field, or is not a JSON object.
	// Always client-caused, never retried.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence means the backing store rejected a write (constraint
	// violation, connectivity loss). Any partial work was rolled back
	// before this error was returned.
	ErrPersistence = errors.New("persistence failed")

	// ErrPrimaryKeyNotSet means an update was attempted on an entity that
	// was never persisted (no assigned id). Validation-class failure.
	ErrPrimaryKeyNotSet = errors.New("primary key not set")
)

// AppError carries a sentinel error class plus a human-readable message.
// The message is safe to return to clients; the class drives the status code.
type AppError struct {
	Err     error  // sentinel class (ErrNotFound, ErrValidation, ...)
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel so errors.Is() can walk the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no entity exists with the given id.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with id '%d' was not found", resource, id),
	}
}

// ValidationFailed reports a client payload problem on the given field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Persistence wraps a database write failure. The underlying cause is kept
// in the message so operators see it in the 500 response and the logs.
func Persistence(op string, cause error) *AppError {
	return &AppError{
		Err:     ErrPersistence,
		Message: fmt.Sprintf("%s: %v", op, cause),
	}
}

// PrimaryKeyNotSet reports an update on an entity with no assigned id.
func PrimaryKeyNotSet() *AppError {
	return &AppError{
		Err:     ErrPrimaryKeyNotSet,
		Message: "cannot update a recommendation that has not been created",
		Field:   "id",
	}
}
