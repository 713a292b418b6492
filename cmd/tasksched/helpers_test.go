package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/airyra/tasksched/internal/client"
	"github.com/airyra/tasksched/internal/domain"
)

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"blocked", errBlocked, ExitBlocked},
		{"server not running", fmt.Errorf("GET /v1/health failed: %w", client.ErrServerNotRunning), ExitServerNotRunning},
		{"invalid reference", domain.NewInvalidReferenceError(9), ExitInvalidReference},
		{"task not found", domain.NewTaskNotFoundError(9), ExitInvalidReference},
		{"cycle", domain.NewCycleDetectedError([]int{1, 2, 1}), ExitCycleDetected},
		{"persistence", domain.NewPersistenceError("tasks.txt", errors.New("disk full")), ExitPersistence},
		{"wrapped cycle", fmt.Errorf("task %q: %w", "a", domain.NewCycleDetectedError([]int{1, 1})), ExitCycleDetected},
		{"validation", domain.NewValidationError([]string{"bad"}), ExitGeneralError},
		{"generic error", errors.New("something went wrong"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mapErrorToExitCode(tt.err)
			if result != tt.expected {
				t.Errorf("mapErrorToExitCode() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseTaskID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTaskID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseTaskID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
