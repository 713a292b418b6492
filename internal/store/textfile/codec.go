// Package textfile persists scheduler state as a flat, pipe-delimited text file:
//
//	<task_id>|<description>|<priority>|<deadline or none>|<completed|pending>
//	#DEPENDENCIES
//	<task_id>-><dep_id>
package textfile

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/airyra/tasksched/internal/domain"
)

const (
	// DependenciesMarker separates task records from edge records.
	DependenciesMarker = "#DEPENDENCIES"
	// NoDeadline is written in place of an absent deadline.
	NoDeadline = "none"

	fieldSep = "|"
	edgeSep  = "->"
)

// Encode writes state in the flat text format. Tasks are written in ascending id
// order, edges by ascending task id then dependency id. Values that the format
// cannot represent are rejected before anything is written.
func Encode(w io.Writer, state *domain.State) error {
	if state == nil {
		state = domain.NewState()
	}
	if err := validate(state); err != nil {
		return err
	}

	tasks := slices.Clone(state.Tasks)
	slices.SortStableFunc(tasks, func(a, b domain.TaskRecord) int { return cmp.Compare(a.ID, b.ID) })
	deps := slices.Clone(state.Dependencies)
	slices.SortFunc(deps, domain.CompareDependencies)

	bw := bufio.NewWriter(w)
	for _, rec := range tasks {
		fmt.Fprintf(bw, "%d|%s|%d|%s|%s\n",
			rec.ID, rec.Description, rec.Priority, rec.DeadlineOr(NoDeadline), domain.StatusOf(rec.Completed))
	}
	fmt.Fprintln(bw, DependenciesMarker)
	for _, dep := range deps {
		fmt.Fprintf(bw, "%d->%d\n", dep.TaskID, dep.DepID)
	}
	return bw.Flush()
}

// Decode parses the flat text format. Descriptions may contain "|": the first
// field is the id and the last three are priority, deadline and status. Lines
// may be of any length.
func Decode(r io.Reader) (*domain.State, error) {
	state := domain.NewState()
	br := bufio.NewReader(r)

	inDeps := false
	lineNo := 0
	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if raw == "" && err == io.EOF {
			break
		}
		lineNo++

		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) != "" {
			if perr := decodeLine(state, line, &inDeps); perr != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, perr)
			}
		}
		if err == io.EOF {
			break
		}
	}
	return state, nil
}

// decodeLine adds one non-blank line to state. inDeps flips at the marker.
func decodeLine(state *domain.State, line string, inDeps *bool) error {
	if line == DependenciesMarker {
		if *inDeps {
			return fmt.Errorf("duplicate %s marker", DependenciesMarker)
		}
		*inDeps = true
		return nil
	}

	if *inDeps {
		dep, err := parseEdge(line)
		if err != nil {
			return err
		}
		state.Dependencies = append(state.Dependencies, dep)
		return nil
	}

	rec, err := parseTask(line)
	if err != nil {
		return err
	}
	state.Tasks = append(state.Tasks, rec)
	return nil
}

func parseTask(line string) (domain.TaskRecord, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < 5 {
		return domain.TaskRecord{}, fmt.Errorf("task record needs 5 fields, got %d", len(fields))
	}
	n := len(fields)

	id, err := strconv.Atoi(fields[0])
	if err != nil || id <= 0 {
		return domain.TaskRecord{}, fmt.Errorf("invalid task id %q", fields[0])
	}
	priority, err := strconv.Atoi(fields[n-3])
	if err != nil {
		return domain.TaskRecord{}, fmt.Errorf("invalid priority %q", fields[n-3])
	}
	var deadline *string
	if dl := fields[n-2]; dl != NoDeadline {
		deadline = &dl
	}
	status := domain.TaskStatus(fields[n-1])
	if !status.IsValid() {
		return domain.TaskRecord{}, fmt.Errorf("invalid status %q", fields[n-1])
	}

	description := strings.Join(fields[1:n-3], fieldSep)
	return domain.TaskRecord{
		Task:      domain.NewTask(id, description, priority, deadline),
		Completed: status == domain.StatusCompleted,
	}, nil
}

func parseEdge(line string) (domain.Dependency, error) {
	left, right, ok := strings.Cut(line, edgeSep)
	if !ok {
		return domain.Dependency{}, fmt.Errorf("invalid dependency record %q", line)
	}
	taskID, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return domain.Dependency{}, fmt.Errorf("invalid task id %q", left)
	}
	depID, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return domain.Dependency{}, fmt.Errorf("invalid dependency id %q", right)
	}
	return domain.NewDependency(taskID, depID), nil
}

func validate(state *domain.State) error {
	var details []string
	for _, rec := range state.Tasks {
		if strings.ContainsAny(rec.Description, "\r\n") {
			details = append(details, fmt.Sprintf("task %d: description contains a line break", rec.ID))
		}
		if rec.Deadline == nil {
			continue
		}
		if strings.ContainsAny(*rec.Deadline, "\r\n"+fieldSep) {
			details = append(details, fmt.Sprintf("task %d: deadline contains a line break or %q", rec.ID, fieldSep))
		}
		if *rec.Deadline == NoDeadline {
			details = append(details, fmt.Sprintf("task %d: deadline %q is reserved", rec.ID, NoDeadline))
		}
	}
	if len(details) > 0 {
		return domain.NewValidationError(details)
	}
	return nil
}
