// Package plan reads task plans written in HCL and admits them into a scheduler.
//
//	task "report" {
//	  description = "Write report"
//	  priority    = 2
//	  deadline    = "2025-06-10"
//	}
//	task "review" {
//	  priority   = 1
//	  depends_on = ["report"]
//	}
package plan

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/logging"
)

// TaskBlock is one task block of a plan file.
type TaskBlock struct {
	Label       string   `hcl:"label,label"`
	Description *string  `hcl:"description,optional"`
	Priority    int      `hcl:"priority,optional"`
	Deadline    *string  `hcl:"deadline,optional"`
	DependsOn   []string `hcl:"depends_on,optional"`
}

// Plan is a parsed plan file, blocks in file order.
type Plan struct {
	Tasks []*TaskBlock `hcl:"task,block"`
}

// Target receives the tasks and edges of a plan.
type Target interface {
	AddTask(description string, priority int, deadline *string) domain.Task
	AddDependency(taskID, depID int) error
}

// Parse decodes plan source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Plan, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse plan %s: %w", filename, diags)
	}

	var p Plan
	if diags := gohcl.DecodeBody(file.Body, nil, &p); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode plan %s: %w", filename, diags)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads and parses the plan at path.
func LoadFile(path string) (*Plan, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(src, path)
}

// Validate rejects duplicate labels and depends_on entries naming no block.
func (p *Plan) Validate() error {
	var details []string
	seen := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if seen[t.Label] {
			details = append(details, fmt.Sprintf("duplicate task %q", t.Label))
		}
		seen[t.Label] = true
	}
	for _, t := range p.Tasks {
		for _, dep := range t.DependsOn {
			if !seen[dep] {
				details = append(details, fmt.Sprintf("task %q depends on unknown task %q", t.Label, dep))
			}
		}
	}
	if len(details) > 0 {
		return domain.NewValidationError(details)
	}
	return nil
}

// Apply admits every task in file order, then adds the declared dependencies.
// It returns the id assigned to each label. A failed dependency aborts the
// apply; tasks already admitted stay in target.
func (p *Plan) Apply(ctx context.Context, target Target) (map[string]int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)

	ids := make(map[string]int, len(p.Tasks))
	for _, t := range p.Tasks {
		description := t.Label
		if t.Description != nil {
			description = *t.Description
		}
		task := target.AddTask(description, t.Priority, t.Deadline)
		ids[t.Label] = task.ID
		logger.Debug("plan task admitted", "label", t.Label, "task_id", task.ID)
	}

	for _, t := range p.Tasks {
		for _, dep := range t.DependsOn {
			if err := target.AddDependency(ids[t.Label], ids[dep]); err != nil {
				return ids, fmt.Errorf("task %q depends on %q: %w", t.Label, dep, err)
			}
		}
	}
	return ids, nil
}
