package errors

import (
	"fmt"
	"testing"
)

func TestStageError_WrapsCause(t *testing.T) {
	err := NewStageError("start screen", ErrKindNotRegistered)

	if !Is(err, ErrKindNotRegistered) {
		t.Error("Expected errors.Is to find the wrapped sentinel")
	}

	expected := "stage: start screen: screen kind not registered"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestStageError_NoCause(t *testing.T) {
	err := NewStageError("stop", nil)
	if err.Error() != "stage: stop" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
	if Unwrap(err) != nil {
		t.Error("Expected nil unwrap for cause-less error")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("screen kind", "editor")

	if err.Error() != "screen kind not found: editor" {
		t.Errorf("Unexpected message: %q", err.Error())
	}

	var nf *NotFoundError
	wrapped := fmt.Errorf("launching: %w", err)
	if !As(wrapped, &nf) {
		t.Error("Expected errors.As to find NotFoundError through wrapping")
	}
	if nf.ID != "editor" {
		t.Errorf("Expected ID editor, got %s", nf.ID)
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"NotFoundError", NewNotFoundError("ticket", "1000"), true},
		{"wrapped sentinel", fmt.Errorf("op: %w", ErrKindNotRegistered), true},
		{"screen not found", ErrScreenNotFound, true},
		{"unrelated", New("boom"), false},
		{"stage stopped", ErrStageStopped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.expected {
				t.Errorf("IsNotFound(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("kind", "must not be empty")
	if err.Error() != "invalid kind: must not be empty" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}
