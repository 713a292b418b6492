package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	err := &DomainError{
		Code:    ErrCodeTaskNotFound,
		Message: "Test message",
		Context: map[string]interface{}{"key": "value"},
	}

	if err.Error() != "Test message" {
		t.Errorf("DomainError.Error() = %v, want %v", err.Error(), "Test message")
	}
}

func TestNewInvalidReferenceError(t *testing.T) {
	err := NewInvalidReferenceError(4, 9)

	if err.Code != ErrCodeInvalidReference {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidReference)
	}
	if !strings.Contains(err.Message, "4") || !strings.Contains(err.Message, "9") {
		t.Errorf("Message should name both ids, got: %v", err.Message)
	}
	ids, ok := err.Context["ids"].([]int)
	if !ok {
		t.Fatalf("Context[ids] should be []int")
	}
	if len(ids) != 2 {
		t.Errorf("Context[ids] length = %d, want 2", len(ids))
	}
}

func TestNewCycleDetectedError(t *testing.T) {
	path := []int{1, 2, 1}
	err := NewCycleDetectedError(path)

	if err.Code != ErrCodeCycleDetected {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCycleDetected)
	}
	if !strings.Contains(err.Message, "1 -> 2 -> 1") {
		t.Errorf("Message should render the path, got: %v", err.Message)
	}
	contextPath, ok := err.Context["path"].([]int)
	if !ok {
		t.Fatalf("Context[path] should be []int")
	}
	if len(contextPath) != len(path) {
		t.Errorf("Context[path] length = %d, want %d", len(contextPath), len(path))
	}
}

func TestNewTaskNotFoundError(t *testing.T) {
	err := NewTaskNotFoundError(42)

	if err.Code != ErrCodeTaskNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTaskNotFound)
	}
	if !strings.Contains(err.Message, "42") {
		t.Errorf("Message should contain task ID, got: %v", err.Message)
	}
	if err.Context["id"] != 42 {
		t.Errorf("Context[id] = %v, want %v", err.Context["id"], 42)
	}
}

func TestNewValidationError(t *testing.T) {
	details := []string{"description is required", "dep_id must be positive"}
	err := NewValidationError(details)

	if err.Code != ErrCodeValidationFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeValidationFailed)
	}
	contextDetails, ok := err.Context["details"].([]string)
	if !ok {
		t.Fatalf("Context[details] should be []string")
	}
	if len(contextDetails) != len(details) {
		t.Errorf("Context[details] length = %d, want %d", len(contextDetails), len(details))
	}
}

func TestNewPersistenceError_Unwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewPersistenceError("/readonly/tasks.txt", cause)

	if err.Code != ErrCodePersistenceFailure {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodePersistenceFailure)
	}
	if !errors.Is(err, cause) {
		t.Error("persistence error should wrap its cause")
	}
	if !strings.Contains(err.Message, "/readonly/tasks.txt") {
		t.Errorf("Message should name the path, got: %v", err.Message)
	}
}

func TestNewInternalError(t *testing.T) {
	err := NewInternalError(nil)

	if err.Code != ErrCodeInternalError {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternalError)
	}
	if strings.Contains(strings.ToLower(err.Message), "nil") {
		t.Error("Internal error message should not expose details")
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("adding edge: %w", NewCycleDetectedError([]int{1, 1}))

	if got := CodeOf(wrapped); got != ErrCodeCycleDetected {
		t.Errorf("CodeOf(wrapped) = %v, want %v", got, ErrCodeCycleDetected)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %v, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %v, want empty", got)
	}
}

func TestErrorCodes_Unique(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeInvalidReference,
		ErrCodeCycleDetected,
		ErrCodeTaskNotFound,
		ErrCodeValidationFailed,
		ErrCodePersistenceFailure,
		ErrCodeInternalError,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %v", code)
		}
		seen[code] = true
	}
}
