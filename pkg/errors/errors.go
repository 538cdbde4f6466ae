package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrUnauthenticated indicates no valid principal for the request
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUpstreamUnreachable indicates a network failure or timeout talking
	// to the matchmaking API
	ErrUpstreamUnreachable = errors.New("upstream unreachable")

	// ErrUpstreamRejected indicates a well-formed non-2xx response from the
	// matchmaking API
	ErrUpstreamRejected = errors.New("upstream rejected")

	// ErrInvalidInput indicates invalid local input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// UnreachableError creates an upstream-unreachable error with context
func UnreachableError(operation string, cause error) error {
	return fmt.Errorf("%s: %v: %w", operation, cause, ErrUpstreamUnreachable)
}

// RejectedError creates an upstream-rejected error carrying the extracted
// user-facing message
func RejectedError(message string) error {
	return fmt.Errorf("%s: %w", message, ErrUpstreamRejected)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
