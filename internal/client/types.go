package client

import "github.com/airyra/tasksched/internal/domain"

// Health is the server's health report.
type Health struct {
	Status  string `json:"status"`
	Tasks   int    `json:"tasks"`
	Pending int    `json:"pending"`
}

// TaskListResponse represents a paginated list of tasks.
type TaskListResponse struct {
	Data       []domain.TaskView `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// Pagination contains pagination metadata from API responses.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Eligibility reports whether a task may run and which dependencies it waits on.
type Eligibility struct {
	TaskID     int   `json:"task_id"`
	Executable bool  `json:"executable"`
	WaitingOn  []int `json:"waiting_on"`
}

// Execution is the result of one remote execution step. Task is set only when
// a task ran.
type Execution struct {
	domain.Outcome
	Task *domain.TaskView `json:"task,omitempty"`
}

// createTaskRequest is the JSON request body for creating a task.
type createTaskRequest struct {
	Description string  `json:"description"`
	Priority    int     `json:"priority"`
	Deadline    *string `json:"deadline,omitempty"`
}

// addDependencyRequest is the JSON request body for adding a dependency.
type addDependencyRequest struct {
	DepID int `json:"dep_id"`
}
