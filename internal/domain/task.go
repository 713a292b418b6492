package domain

// TaskStatus represents whether a task has run yet.
// Status is derived from the completed set, never stored on the task itself.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// ValidStatuses contains all valid task status values.
var ValidStatuses = []TaskStatus{StatusPending, StatusCompleted}

// IsValid checks if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// StatusOf maps a completion flag to its status value.
func StatusOf(completed bool) TaskStatus {
	if completed {
		return StatusCompleted
	}
	return StatusPending
}

// Task represents a unit of work admitted to the scheduler.
// Tasks are immutable once created.
type Task struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Priority    int     `json:"priority"`
	Deadline    *string `json:"deadline,omitempty"`
}

// NewTask creates a task record. A nil deadline means none was given.
func NewTask(id int, description string, priority int, deadline *string) Task {
	t := Task{
		ID:          id,
		Description: description,
		Priority:    priority,
	}
	if deadline != nil {
		dl := *deadline
		t.Deadline = &dl
	}
	return t
}

// HasDeadline reports whether a deadline was recorded.
func (t Task) HasDeadline() bool {
	return t.Deadline != nil
}

// DeadlineOr returns the deadline, or fallback when none is set.
func (t Task) DeadlineOr(fallback string) string {
	if t.Deadline == nil {
		return fallback
	}
	return *t.Deadline
}

// TaskView is a task annotated with its completion status, as shown by listings.
type TaskView struct {
	Task
	Status TaskStatus `json:"status"`
}

// Completed reports whether the viewed task has executed.
func (v TaskView) Completed() bool {
	return v.Status == StatusCompleted
}

// StringPtr returns a pointer to s. Handy for optional deadlines.
func StringPtr(s string) *string {
	return &s
}
