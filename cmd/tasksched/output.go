package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/airyra/tasksched/internal/domain"
)

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// printTask prints a single task with its dependency relations
func printTask(w io.Writer, view domain.TaskView, deps, dependents []int, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, map[string]interface{}{
			"task":       view,
			"depends_on": deps,
			"blocks":     dependents,
		})
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", view.ID)
	fmt.Fprintf(tw, "Description:\t%s\n", view.Description)
	fmt.Fprintf(tw, "Priority:\t%d\n", view.Priority)
	if view.HasDeadline() {
		fmt.Fprintf(tw, "Deadline:\t%s\n", *view.Deadline)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", view.Status)
	if len(deps) > 0 {
		fmt.Fprintf(tw, "Depends on:\t%s\n", joinInts(deps))
	}
	if len(dependents) > 0 {
		fmt.Fprintf(tw, "Blocks:\t%s\n", joinInts(dependents))
	}
	tw.Flush()
}

// printDependencies prints what a task depends on and what it blocks
func printDependencies(w io.Writer, taskID int, deps, dependents []int, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, map[string]interface{}{
			"task_id":    taskID,
			"depends_on": deps,
			"blocks":     dependents,
		})
		return
	}

	if len(deps) == 0 && len(dependents) == 0 {
		fmt.Fprintf(w, "Task %d has no dependencies\n", taskID)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "TYPE\tTASK ID\n")
	fmt.Fprintf(tw, "----\t-------\n")
	for _, id := range deps {
		fmt.Fprintf(tw, "depends on\t%d\n", id)
	}
	for _, id := range dependents {
		fmt.Fprintf(tw, "blocks\t%d\n", id)
	}
	tw.Flush()
}

// printOutcome prints the result of one execution step
func printOutcome(w io.Writer, outcome domain.Outcome, task domain.TaskView) {
	switch outcome.Kind {
	case domain.OutcomeExecuted:
		fmt.Fprintf(w, "Executing: %s (ID: %d)\n", task.Description, task.ID)
	case domain.OutcomeNoTasks:
		fmt.Fprintln(w, "No tasks to execute.")
	case domain.OutcomeBlocked:
		for _, id := range outcome.Deferred {
			fmt.Fprintf(w, "Cannot execute task %d: dependencies not met.\n", id)
		}
	}
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	if jsonOutput {
		body := map[string]interface{}{"message": err.Error()}
		if code := domain.CodeOf(err); code != "" {
			body["code"] = code
		}
		writeJSON(w, map[string]interface{}{"error": body})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, map[string]interface{}{
			"message": message,
		})
		return
	}

	fmt.Fprintln(w, message)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
