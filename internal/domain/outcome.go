package domain

// OutcomeKind identifies the result of one execution step.
type OutcomeKind string

const (
	OutcomeExecuted OutcomeKind = "executed"
	OutcomeNoTasks  OutcomeKind = "no_tasks"
	OutcomeBlocked  OutcomeKind = "blocked"
)

// Outcome is the result of a single execute-next step.
type Outcome struct {
	Kind OutcomeKind `json:"outcome"`
	// TaskID is set only when Kind is OutcomeExecuted.
	TaskID int `json:"task_id,omitempty"`
	// Deferred lists pending tasks examined and found ineligible, in the order they
	// were examined. They remain pending.
	Deferred []int `json:"deferred,omitempty"`
}

// Executed returns an outcome for a task that ran.
func Executed(taskID int) Outcome {
	return Outcome{Kind: OutcomeExecuted, TaskID: taskID}
}

// NoTasks returns an outcome for an empty queue.
func NoTasks() Outcome {
	return Outcome{Kind: OutcomeNoTasks}
}

// Blocked returns an outcome for a queue in which no task was eligible.
func Blocked(deferred []int) Outcome {
	return Outcome{Kind: OutcomeBlocked, Deferred: deferred}
}
