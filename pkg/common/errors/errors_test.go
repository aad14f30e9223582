package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrInvalidArgument", ErrInvalidArgument, "invalid argument"},
		{"ErrInvalidState", ErrInvalidState, "operation invalid in current state"},
		{"ErrResource", ErrResource, "storage resource failure"},
		{"ErrQueue", ErrQueue, "command queue failure"},
		{"ErrClosed", ErrClosed, "resource is closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "recorder",
				Field:  "buffer_size",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "recorder: invalid buffer_size=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "recorder",
				Field:  "path",
				Value:  "",
				Reason: "cannot be empty",
				Hint:   "pass the destination file path",
			},
			want: "recorder: invalid path= (cannot be empty) - pass the destination file path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := &ValidationError{Module: "test", Field: "field", Value: 0, Reason: "test"}

	if verr.Unwrap() != ErrInvalidArgument {
		t.Errorf("Unwrap() = %v, want ErrInvalidArgument", verr.Unwrap())
	}
	if !errors.Is(verr, ErrInvalidArgument) {
		t.Error("ValidationError should wrap ErrInvalidArgument")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("module", "field", 123, "test reason")

	if err.Module != "module" {
		t.Errorf("Module = %q, want %q", err.Module, "module")
	}
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Value != 123 {
		t.Errorf("Value = %v, want %v", err.Value, 123)
	}
	if err.Reason != "test reason" {
		t.Errorf("Reason = %q, want %q", err.Reason, "test reason")
	}
	if err.Hint != "" {
		t.Errorf("Hint = %q, want empty string", err.Hint)
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try a positive value")

	if err.Hint != "try a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try a positive value")
	}

	// Should return same instance for chaining
	result := err.WithHint("new hint")
	if result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestStateError_Error(t *testing.T) {
	err := &StateError{Module: "recorder", Op: "Push", State: "Idle"}
	want := "recorder.Push not allowed in state Idle"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestStateError_Unwrap(t *testing.T) {
	serr := NewStateError("recorder", "Finish", "Finished")

	if !errors.Is(serr, ErrInvalidState) {
		t.Error("StateError should wrap ErrInvalidState")
	}
	if !IsStateError(serr) {
		t.Error("IsStateError should report true")
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err: &OperationError{
				Module:    "sink",
				Operation: "Write",
				Cause:     errors.New("write failed"),
			},
			want: "sink.Write failed: write failed",
		},
		{
			name: "with context",
			err: &OperationError{
				Module:    "recorder",
				Operation: "Push",
				Cause:     errors.New("queue closed"),
				Context:   "flush of full buffer",
			},
			want: "recorder.Push failed: queue closed (flush of full buffer)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	opErr := &OperationError{Module: "test", Operation: "test", Cause: cause}

	if opErr.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", opErr.Unwrap(), cause)
	}
	if !errors.Is(opErr, cause) {
		t.Error("OperationError should wrap the cause error")
	}
}

func TestOperationError_WithContext(t *testing.T) {
	err := NewOperationError("test", "op", errors.New("err")).
		WithContext("additional context")

	if err.Context != "additional context" {
		t.Errorf("Context = %q, want %q", err.Context, "additional context")
	}

	// Should return same instance for chaining
	result := err.WithContext("new context")
	if result != err {
		t.Error("WithContext should return the same instance")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		fn   func(error) bool
		want bool
	}{
		{"resource sentinel", ErrResource, IsResource, true},
		{"wrapped resource", &OperationError{Cause: ErrResource}, IsResource, true},
		{"queue sentinel", ErrQueue, IsQueue, true},
		{"wrapped queue", &OperationError{Cause: ErrQueue}, IsQueue, true},
		{"resource is not queue", ErrResource, IsQueue, false},
		{"random error", errors.New("random"), IsResource, false},
		{"nil error", nil, IsQueue, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			"validation error",
			&ValidationError{Module: "test", Field: "field", Value: 0, Reason: "test"},
			true,
		},
		{
			"wrapped validation error",
			&OperationError{Cause: &ValidationError{Module: "test", Field: "field", Value: 0, Reason: "test"}},
			true,
		},
		{"operation error", &OperationError{Cause: errors.New("test")}, false},
		{"standard error", errors.New("test"), false},
		{"state error", NewStateError("m", "op", "Idle"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	// Test that error messages contain every component a caller needs
	t.Run("ValidationError message components", func(t *testing.T) {
		err := NewValidationError("recorder", "queue_depth", 0, "must be positive").
			WithHint("use at least 1")

		msg := err.Error()

		expectedParts := []string{"recorder", "queue_depth", "0", "must be positive", "use at least 1"}
		for _, part := range expectedParts {
			if !strings.Contains(msg, part) {
				t.Errorf("error message should contain %q, got %q", part, msg)
			}
		}
	})

	t.Run("OperationError message components", func(t *testing.T) {
		err := NewOperationError("sink", "Open", errors.New("permission denied")).
			WithContext("path /capture/power.dat")

		msg := err.Error()

		expectedParts := []string{"sink", "Open", "permission denied", "/capture/power.dat"}
		for _, part := range expectedParts {
			if !strings.Contains(msg, part) {
				t.Errorf("error message should contain %q, got %q", part, msg)
			}
		}
	})
}
