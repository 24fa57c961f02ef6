package apperrors

import (
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorMismatch = 3   // Indicates a result mismatch between backends.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input precondition violation. It identifies
// which argument failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the argument that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// ErrZeroModulus is the fail-fast signal for the one undefined input of the
// modular Fibonacci contract: reduction modulo zero. Callers are required to
// guarantee m >= 1; every backend rejects a violation with this error before
// starting the computation.
var ErrZeroModulus = ValidationError{Field: "mod", Message: "modulus must be >= 1"}

// ServerError encapsulates an HTTP server failure while preserving the
// original cause.
type ServerError struct {
	// Message describes the failing operation.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message including the underlying cause.
func (e ServerError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError wrapping the given cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
