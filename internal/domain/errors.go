package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorCode represents a domain error code.
type ErrorCode string

const (
	ErrCodeInvalidReference   ErrorCode = "INVALID_REFERENCE"
	ErrCodeCycleDetected      ErrorCode = "CYCLE_DETECTED"
	ErrCodeTaskNotFound       ErrorCode = "TASK_NOT_FOUND"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodePersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
	ErrCodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents an error in the domain layer with context.
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the error code from err, or "" if err carries none.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// NewInvalidReferenceError creates an error naming task ids absent from the registry.
func NewInvalidReferenceError(ids ...int) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidReference,
		Message: fmt.Sprintf("Unknown task %s", joinIDs(ids, ", ")),
		Context: map[string]interface{}{"ids": ids},
	}
}

// NewCycleDetectedError creates a cycle detected error. Path starts and ends at the same task.
func NewCycleDetectedError(path []int) *DomainError {
	return &DomainError{
		Code:    ErrCodeCycleDetected,
		Message: "Adding this dependency would create a cycle: " + joinIDs(path, " -> "),
		Context: map[string]interface{}{"path": path},
	}
}

// NewTaskNotFoundError creates a task not found error.
func NewTaskNotFoundError(taskID int) *DomainError {
	return &DomainError{
		Code:    ErrCodeTaskNotFound,
		Message: fmt.Sprintf("Task %d not found", taskID),
		Context: map[string]interface{}{"id": taskID},
	}
}

// NewValidationError creates a validation error.
func NewValidationError(details []string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed: " + strings.Join(details, "; "),
		Context: map[string]interface{}{"details": details},
	}
}

// NewPersistenceError creates an error for a state file or database that could not be
// written or read.
func NewPersistenceError(path string, err error) *DomainError {
	msg := fmt.Sprintf("State persistence failed for %s", path)
	if err != nil {
		msg += ": " + err.Error()
	}
	return &DomainError{
		Code:    ErrCodePersistenceFailure,
		Message: msg,
		Context: map[string]interface{}{"path": path},
		Err:     err,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInternalError,
		Message: "An internal error occurred",
		Context: map[string]interface{}{},
		Err:     err,
	}
}

func joinIDs(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
