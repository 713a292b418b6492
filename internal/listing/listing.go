// Package listing renders scheduler snapshots for people: one line per task,
// a JSON document, or a Graphviz DOT graph of the dependency relation.
package listing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/airyra/tasksched/internal/domain"
)

// ErrNilWriter indicates that a nil writer was provided.
var ErrNilWriter = errors.New("listing: nil writer")

// FormatLine renders a single task:
//
//	ID: <id>, Description: <description>, Priority: <priority>[, Deadline: <deadline>][ [COMPLETED]]
func FormatLine(view domain.TaskView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d, Description: %s, Priority: %d", view.ID, view.Description, view.Priority)
	if view.HasDeadline() {
		fmt.Fprintf(&b, ", Deadline: %s", *view.Deadline)
	}
	if view.Completed() {
		b.WriteString(" [COMPLETED]")
	}
	return b.String()
}

// WriteText writes one line per view, in the order given.
func WriteText(w io.Writer, views []domain.TaskView) error {
	if w == nil {
		return ErrNilWriter
	}
	for _, v := range views {
		if _, err := fmt.Fprintln(w, FormatLine(v)); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the views as an indented JSON array.
func WriteJSON(w io.Writer, views []domain.TaskView) error {
	if w == nil {
		return ErrNilWriter
	}
	if views == nil {
		views = []domain.TaskView{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}
