// Package errors provides centralized error definitions and error handling
// utilities for stagedoor. It defines sentinel errors for the coordination
// engine, semantic error types, and classification helpers.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewNotFoundError("screen kind", "editor")
//	err := errors.NewStageError("launch failed", errors.ErrKindNotRegistered)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrStageStopped) { ... }
//
//	var nf *errors.NotFoundError
//	if errors.As(err, &nf) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for the coordination engine.
var (
	// ErrStageStopped is returned when an operation is posted to a stage
	// whose run loop has exited.
	ErrStageStopped = errors.New("stage stopped")

	// ErrStageRunning is returned when Run is called on a stage that is
	// already running.
	ErrStageRunning = errors.New("stage already running")

	// ErrKindNotRegistered is returned when an intent names a screen kind
	// no factory has been registered for.
	ErrKindNotRegistered = errors.New("screen kind not registered")

	// ErrScreenNotFound is returned when an operation targets a screen
	// that is not on the stack.
	ErrScreenNotFound = errors.New("screen not found")

	// ErrNotAttached is returned when a controller tries to launch before
	// its host has been attached to the stage.
	ErrNotAttached = errors.New("controller not attached to a stage")
)

// StageError represents an error from the stage driver, wrapping the
// underlying cause with an operation description.
type StageError struct {
	// Op describes the operation that failed.
	Op string
	// Err is the underlying error.
	Err error
}

// NewStageError creates a StageError.
func NewStageError(op string, err error) *StageError {
	return &StageError{Op: op, Err: err}
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("stage: %s", e.Op)
	}
	return fmt.Sprintf("stage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a resource that could not be found.
type NotFoundError struct {
	// Resource is the type of resource (e.g., "screen kind", "ticket").
	Resource string
	// ID is the identifier that was looked up.
	ID string
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents invalid input or state.
type ValidationError struct {
	// Field is the field or parameter that failed validation.
	Field string
	// Message describes what is wrong.
	Message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsNotFound reports whether err is, or wraps, a not-found condition.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return true
	}
	return errors.Is(err, ErrKindNotRegistered) || errors.Is(err, ErrScreenNotFound)
}
