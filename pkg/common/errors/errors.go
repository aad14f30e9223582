// Package errors defines the error taxonomy shared across powerlog components.
package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the powerlog library

var (
	// ErrInvalidArgument indicates that a caller-supplied argument was rejected
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState indicates an operation invalid for the current lifecycle state
	ErrInvalidState = errors.New("operation invalid in current state")

	// ErrResource indicates a storage resource failure (open, write, or sync)
	ErrResource = errors.New("storage resource failure")

	// ErrQueue indicates a command queue failure (send or receive)
	ErrQueue = errors.New("command queue failure")

	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")
)

// ValidationError describes a rejected argument with enough context to fix it.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{Module: module, Field: field, Value: value, Reason: reason}
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes ValidationError match ErrInvalidArgument via errors.Is.
func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// StateError describes an operation rejected because of the component's
// lifecycle state (for example calling Push before Start).
type StateError struct {
	Module string
	Op     string
	State  string
}

// NewStateError creates a StateError for the given module, operation and state.
func NewStateError(module, op, state string) *StateError {
	return &StateError{Module: module, Op: op, State: state}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s.%s not allowed in state %s", e.Module, e.Op, e.State)
}

// Unwrap makes StateError match ErrInvalidState via errors.Is.
func (e *StateError) Unwrap() error { return ErrInvalidState }

// OperationError wraps a failure of a named operation with optional context.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError wrapping cause.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{Module: module, Operation: operation, Cause: cause}
}

// WithContext attaches extra context and returns the same error for chaining.
func (e *OperationError) WithContext(ctx string) *OperationError {
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error { return e.Cause }

// IsValidationError returns true if err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsStateError returns true if err is or wraps a StateError
func IsStateError(err error) bool {
	var serr *StateError
	return errors.As(err, &serr)
}

// IsResource returns true if err indicates a storage resource failure
func IsResource(err error) bool {
	return errors.Is(err, ErrResource)
}

// IsQueue returns true if err indicates a command queue failure
func IsQueue(err error) bool {
	return errors.Is(err, ErrQueue)
}
