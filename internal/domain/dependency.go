package domain

import "cmp"

// Dependency represents a dependency edge between tasks.
// TaskID may not execute until DepID has completed.
type Dependency struct {
	TaskID int `json:"task_id"`
	DepID  int `json:"dep_id"`
}

// NewDependency creates a new dependency edge.
func NewDependency(taskID, depID int) Dependency {
	return Dependency{
		TaskID: taskID,
		DepID:  depID,
	}
}

// CompareDependencies orders edges by task id, then dependency id.
func CompareDependencies(a, b Dependency) int {
	if c := cmp.Compare(a.TaskID, b.TaskID); c != 0 {
		return c
	}
	return cmp.Compare(a.DepID, b.DepID)
}
