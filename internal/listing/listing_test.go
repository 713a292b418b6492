package listing

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/airyra/tasksched/internal/domain"
)

func view(id int, desc string, prio int, deadline *string, status domain.TaskStatus) domain.TaskView {
	return domain.TaskView{Task: domain.NewTask(id, desc, prio, deadline), Status: status}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name string
		view domain.TaskView
		want string
	}{
		{
			name: "pending without deadline",
			view: view(2, "Review code", 1, nil, domain.StatusPending),
			want: "ID: 2, Description: Review code, Priority: 1",
		},
		{
			name: "pending with deadline",
			view: view(1, "Write report", 2, domain.StringPtr("2025-06-10"), domain.StatusPending),
			want: "ID: 1, Description: Write report, Priority: 2, Deadline: 2025-06-10",
		},
		{
			name: "completed with deadline",
			view: view(1, "Write report", 2, domain.StringPtr("2025-06-10"), domain.StatusCompleted),
			want: "ID: 1, Description: Write report, Priority: 2, Deadline: 2025-06-10 [COMPLETED]",
		},
		{
			name: "completed without deadline",
			view: view(3, "Ship", -1, nil, domain.StatusCompleted),
			want: "ID: 3, Description: Ship, Priority: -1 [COMPLETED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLine(tt.view); got != tt.want {
				t.Errorf("FormatLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	views := []domain.TaskView{
		view(1, "Write report", 2, nil, domain.StatusCompleted),
		view(2, "Review code", 1, nil, domain.StatusPending),
	}
	if err := WriteText(&buf, views); err != nil {
		t.Fatalf("WriteText() failed: %v", err)
	}

	want := "ID: 1, Description: Write report, Priority: 2 [COMPLETED]\n" +
		"ID: 2, Description: Review code, Priority: 1\n"
	if buf.String() != want {
		t.Errorf("WriteText() = %q, want %q", buf.String(), want)
	}
}

func TestWriteText_NilWriter(t *testing.T) {
	if err := WriteText(nil, nil); err != ErrNilWriter {
		t.Errorf("WriteText(nil) error = %v, want ErrNilWriter", err)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	views := []domain.TaskView{view(1, "Write report", 2, domain.StringPtr("2025-06-10"), domain.StatusCompleted)}
	if err := WriteJSON(&buf, views); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d items, want 1", len(decoded))
	}
	if decoded[0]["status"] != "completed" {
		t.Errorf("status = %v, want completed", decoded[0]["status"])
	}
	if decoded[0]["deadline"] != "2025-06-10" {
		t.Errorf("deadline = %v, want 2025-06-10", decoded[0]["deadline"])
	}
}

func TestWriteJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("WriteJSON(nil) = %q, want []", buf.String())
	}
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	views := []domain.TaskView{
		view(2, "Review \"code\"", 1, nil, domain.StatusPending),
		view(1, "Write report", 2, nil, domain.StatusCompleted),
	}
	deps := []domain.Dependency{domain.NewDependency(2, 1)}

	if err := WriteDOT(&buf, views, deps, DOTWithGraphName("plan"), DOTWithRankDir("TB")); err != nil {
		t.Fatalf("WriteDOT() failed: %v", err)
	}

	want := "digraph \"plan\" {\n" +
		"    rankdir=TB;\n" +
		"    t1 [label=\"1: Write report (p2)\", style=filled, fillcolor=lightgrey];\n" +
		"    t2 [label=\"2: Review \\\"code\\\" (p1)\"];\n" +
		"    t1 -> t2;\n" +
		"}\n"
	if buf.String() != want {
		t.Errorf("WriteDOT() =\n%s\nwant\n%s", buf.String(), want)
	}
}
