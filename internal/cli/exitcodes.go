package cli

import (
	"errors"
	"fmt"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: store errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags, malformed IDs, empty updates.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: unknown partner IDs and unknown stage names.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: rows from the backend that fail to parse.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: form validation failures and removing a stage in use.
	ExitValidation = 5

	// ExitAuth indicates nobody is signed in or sign in failed.
	ExitAuth = 6
)

// CommandError carries the process exit code for a failed command. The error
// has already been reported to the user when it is returned.
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Exit wraps err with an exit code.
func Exit(code int, err error) error {
	return &CommandError{Code: code, Err: err}
}

// ExitCode returns the exit code for an error returned by a command.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *CommandError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitError
}
