// Package errors provides sentinel errors and custom error types for the gitx application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrExecution indicates that an external command exited non-zero
	ErrExecution = errors.New("command failed")

	// ErrMergeConflict indicates that a pull or merge step failed and needs manual resolution
	ErrMergeConflict = errors.New("merge conflict")

	// ErrConfiguration indicates an operation was invoked against a branch that violates the workflow configuration
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNotFound indicates that a requested ref (usually a build tag) does not exist
	ErrNotFound = errors.New("not found")

	// ErrInteractiveDisabled is returned when a prompt is needed but no terminal is attached
	ErrInteractiveDisabled = errors.New("interactive prompts are disabled")
)

// ExecutionError represents an external command that exited with a non-zero status
type ExecutionError struct {
	Command    string
	Args       []string
	ExitStatus int
	Output     string
	Err        error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	msg += fmt.Sprintf(" (exit status %d)", e.ExitStatus)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

// Is returns true if the target error is ErrExecution
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError creates a new ExecutionError
func NewExecutionError(command string, args []string, exitStatus int, output string, err error) *ExecutionError {
	return &ExecutionError{
		Command:    command,
		Args:       args,
		ExitStatus: exitStatus,
		Output:     output,
		Err:        err,
	}
}

// MergeConflictError is raised when a pull or merge fails. Recovery is manual;
// RecoveryCommand is what the user reruns once the conflict is resolved.
type MergeConflictError struct {
	RecoveryCommand string
	Err             error
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge conflict occurred. Please fix the merge conflict and rerun `%s`", e.RecoveryCommand)
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

func (e *MergeConflictError) Unwrap() error {
	return e.Err
}

// NewMergeConflictError creates a new MergeConflictError
func NewMergeConflictError(recoveryCommand string, err error) *MergeConflictError {
	return &MergeConflictError{RecoveryCommand: recoveryCommand, Err: err}
}

// ConfigurationError represents an operation invoked against a branch that
// violates a workflow invariant (not an aggregate, reserved, not taggable)
type ConfigurationError struct {
	Branch  string
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrConfiguration
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(branch, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Branch: branch, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError represents a missing ref, such as a branch without build tags
type NotFoundError struct {
	What    string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(what, format string, args ...any) *NotFoundError {
	return &NotFoundError{What: what, Message: fmt.Sprintf(format, args...)}
}
