package output

import "errors"

// Exit codes reported by the CLI:
// 0 = success
// 1 = runtime failure (git invocation failed, I/O error)
// 2 = usage error (bad flags, no repository, scope outside the repository)
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUsageError creates an error for operator mistakes (exit code 2).
// Use for: unknown flags, missing subcommands, a scope that escapes the
// repository, or running outside a git repository.
func NewUsageError(message string) *ExitError {
	return &ExitError{Code: ExitUsageError, Message: message}
}

// NewRuntimeError creates an error for failures of the tool itself
// (exit code 1). Use for: git subprocess failures and report I/O errors.
func NewRuntimeError(message string) *ExitError {
	return &ExitError{Code: ExitRuntimeError, Message: message}
}

// NewRuntimeErrorWithCause creates a runtime error wrapping an underlying cause.
func NewRuntimeErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitRuntimeError, Message: message, Cause: cause}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitRuntimeError for untyped errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitRuntimeError
}
