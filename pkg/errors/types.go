// Package errors defines the error taxonomy for the heldback engine.
// It distinguishes structural registry faults, registry inconsistencies,
// and credential failures, and maps errors to process exit codes for
// scripting integration.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates the query completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates the query failed.
	// This includes structural registry faults and registry inconsistencies.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or credential error.
	// The command could not proceed due to invalid config or missing requirements.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess, ExitFailure, ExitConfigError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// If err is a StructuralError or InconsistencyError, returns ExitFailure.
// If err is a CredentialError, returns ExitConfigError.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var credErr *CredentialError
	if errors.As(err, &credErr) {
		return ExitConfigError
	}

	return ExitFailure
}

// StructuralError indicates a malformed registry file or expression.
//
// A structural fault is fatal: the registry is assumed internally
// consistent, so the engine does not attempt partial recovery. The whole
// query is aborted and no partial result is returned.
//
// Fields:
//   - Path: The registry file (or expression source) that failed to parse
//   - Reason: What was malformed
//   - Err: Underlying parse error, may be nil
type StructuralError struct {
	// Path is the file path or expression that failed to parse.
	Path string

	// Reason explains what was malformed.
	Reason string

	// Err is the underlying parse error, may be nil.
	Err error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return e.Reason
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StructuralError) Unwrap() error {
	return e.Err
}

// NewStructuralError creates a StructuralError for a malformed source.
//
// Parameters:
//   - path: The file path or expression that failed to parse
//   - reason: What was malformed
//   - err: Underlying parse error, may be nil
//
// Returns:
//   - *StructuralError: New structural error
func NewStructuralError(path, reason string, err error) *StructuralError {
	return &StructuralError{Path: path, Reason: reason, Err: err}
}

// IsStructural reports whether the error indicates a malformed registry file.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err is a StructuralError
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// InconsistencyError indicates a registry invariant violation.
//
// It is raised when a resolved dependency table references an identity
// that is not present in the global index. This is unreachable for a
// well-formed registry snapshot, so the engine fails loudly rather than
// silently omitting the check.
//
// Fields:
//   - Holder: Name of the package whose dependency table is inconsistent
//   - Dependency: Name of the dependency that could not be resolved
//   - Identity: The unresolvable identity
type InconsistencyError struct {
	// Holder is the package whose dependency table references the identity.
	Holder string

	// Dependency is the declared dependency name.
	Dependency string

	// Identity is the identity missing from the index.
	Identity string
}

// Error implements the error interface.
func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("registry inconsistency: %s depends on %s (%s) which is not in the index",
		e.Holder, e.Dependency, e.Identity)
}

// IsInconsistency reports whether the error indicates a registry inconsistency.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err is an InconsistencyError
func IsInconsistency(err error) bool {
	var ie *InconsistencyError
	return errors.As(err, &ie)
}

// CredentialError indicates a missing or empty credential.
//
// The discovery component fails with this error before any network call
// is attempted.
//
// Fields:
//   - Variable: The environment variable that was expected to hold the credential
type CredentialError struct {
	// Variable is the environment variable name checked for the credential.
	Variable string
}

// Error implements the error interface.
func (e *CredentialError) Error() string {
	return fmt.Sprintf("missing credential: set %s to a valid access token", e.Variable)
}

// IsCredential reports whether the error indicates a missing credential.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err is a CredentialError
func IsCredential(err error) bool {
	var ce *CredentialError
	return errors.As(err, &ce)
}
