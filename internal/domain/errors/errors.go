// Package errors defines the application error taxonomy. Every business
// failure carries the HTTP status it maps to, so the delivery layer can
// translate errors in one place without switching on error strings.
package errors

import (
	"net/http"

	"notevault/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types
var (
	// ErrValidationFailed covers malformed, missing or mismatched input.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input",
	)

	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_MISMATCH",
		"Passwords do not match",
	)

	// ErrEmailTaken is returned when registering with an email that already
	// has an account. Surfaced as 400 to match the public API contract.
	ErrEmailTaken = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_TAKEN",
		"User already exists",
	)

	// ErrUserNotFound is returned by login for an unknown email. The API
	// deliberately distinguishes this from a wrong password.
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
	)

	// ErrInvalidCredentials is returned by login for a wrong password.
	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
	)

	// ErrUnauthenticated covers a missing, malformed, tampered or expired
	// bearer token. The three token failure modes are never distinguished
	// in the response.
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Not authorized",
	)

	// ErrForbidden is returned when an authenticated user touches a note
	// owned by somebody else.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have access to this note",
	)

	// ErrNoteNotFound is returned when no note exists for the given ID.
	ErrNoteNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTE_NOT_FOUND",
		"Note not found",
	)

	// ErrPasswordHashFailed indicates the hasher itself failed; fatal to
	// the registration or profile-update operation.
	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
	)

	// ErrInternal is the generic fallback for unexpected failures.
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface.
// The underlying driver error is kept for logs but never sent to clients.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Internal server error"
}
