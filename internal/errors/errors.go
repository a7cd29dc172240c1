package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig = "CONFIG"
	ErrSpawn  = "SPAWN"
	ErrUsage  = "USAGE"
	ErrExec   = "EXEC"
)

// Reserved process exit codes for failures that happen outside the child.
const (
	// ExitUsage is returned for bad flags, a missing command, or invalid config.
	ExitUsage = 2
	// ExitSpawnFailure is returned when the child process could not be started.
	ExitSpawnFailure = 127
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrExec code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrExec,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var llErr *Error
	if errors.As(err, &llErr) {
		return llErr.Code == code
	}
	return false
}

// ExitCodeFor maps an error to the process exit code liveline should use.
// Child exit codes pass through, spawn failures get ExitSpawnFailure, and
// everything else is a usage error.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := GetExitCode(err); ok {
		return code
	}
	if IsCode(err, ErrSpawn) {
		return ExitSpawnFailure
	}
	if IsCode(err, ErrExec) {
		return 1
	}
	return ExitUsage
}

// ExitError carries the exit code of a child process that ran but failed.
// Its output has already been shown, so callers exit without printing it.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError for the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// GetExitCode extracts the code from an ExitError anywhere in the chain.
func GetExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
