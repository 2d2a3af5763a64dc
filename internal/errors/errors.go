package apperrors

import (
	"errors"
	"fmt"
	"io"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0  // Indicates successful execution.
	ExitErrorConfig   = 1  // Indicates a usage, parse or domain-constraint error.
	ExitErrorGeneric  = 2  // Indicates an unclassified runtime error.
	ExitErrorMismatch = 3  // Indicates inconsistent results between policies.
	ExitErrorInternal = 70 // Indicates an internal contract violation (EX_SOFTWARE).
)

// ConfigError represents a command-line usage error, such as a wrong number
// of arguments or an unknown flag value. The application cannot proceed.
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

// ParseError represents a positional argument that is not a valid base-10
// unsigned integer.
type ParseError struct {
	// Field is the name of the argument that failed to parse.
	Field string
	// Value is the raw text supplied on the command line.
	Value string
	// Cause is the underlying strconv error.
	Cause error
}

// Error returns a formatted message describing the parse failure.
func (e ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Cause)
}

// Unwrap returns the underlying parse error.
func (e ParseError) Unwrap() error { return e.Cause }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// ContractError reports an internal invariant broken between the partitioner
// and a worker. It is never caused by user input.
type ContractError struct {
	// Worker is the index of the worker that detected the violation.
	Worker int
	// Message describes the broken invariant.
	Message string
}

// Error returns a formatted message describing the contract violation.
func (e ContractError) Error() string {
	return fmt.Sprintf("internal contract violation in worker %d: %s", e.Worker, e.Message)
}

// CalculationError encapsulates a calculation error while preserving the
// original cause.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// ExitCodeFor maps an error to the process exit status.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		configErr     ConfigError
		parseErr      ParseError
		validationErr ValidationError
		contractErr   ContractError
	)
	switch {
	case errors.As(err, &contractErr):
		return ExitErrorInternal
	case errors.As(err, &configErr), errors.As(err, &parseErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleError writes a diagnostic for err to out and returns the matching
// exit code. A nil error produces no output.
func HandleError(err error, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(out, "Error: %v\n", err)
	return ExitCodeFor(err)
}
