// Package scheduler implements the in-memory scheduling engine: the task
// registry, the acyclic dependency graph, the priority-ordered execution queue
// and the execute-next step that ties them together.
//
// A Scheduler is not safe for concurrent use. Callers that share one across
// goroutines must serialize every operation (see internal/service).
package scheduler

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/logging"
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for scheduling events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scheduler orders admitted tasks by priority and dependencies and executes
// them one step at a time.
type Scheduler struct {
	registry  *Registry
	graph     *Graph
	queue     *Queue
	completed map[int]struct{}
	logger    *slog.Logger
}

// New creates an empty scheduler.
func New(opts ...Option) *Scheduler {
	registry := NewRegistry()
	s := &Scheduler{
		registry:  registry,
		graph:     NewGraph(),
		queue:     NewQueue(registry.priorityOf),
		completed: make(map[int]struct{}),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTask admits a new task and enqueues it. Priority and deadline are not validated.
func (s *Scheduler) AddTask(description string, priority int, deadline *string) domain.Task {
	task := s.registry.Add(description, priority, deadline)
	s.queue.Push(task.ID)
	s.logger.Debug("task admitted", "task_id", task.ID, "priority", task.Priority)
	return task
}

// NextID returns the id the next AddTask will assign.
func (s *Scheduler) NextID() int {
	return s.registry.NextID()
}

// AddDependency records that taskID may not execute before depID completes.
// It fails with an INVALID_REFERENCE error if either task is unknown and with a
// CYCLE_DETECTED error if the edge would close a cycle. A rejected call changes nothing.
func (s *Scheduler) AddDependency(taskID, depID int) error {
	var unknown []int
	if !s.registry.Has(taskID) {
		unknown = append(unknown, taskID)
	}
	if depID != taskID && !s.registry.Has(depID) {
		unknown = append(unknown, depID)
	}
	if len(unknown) > 0 {
		s.logger.Debug("dependency rejected", "task_id", taskID, "dep_id", depID, "reason", "unknown task")
		return domain.NewInvalidReferenceError(unknown...)
	}

	if path := s.graph.Add(taskID, depID); path != nil {
		s.logger.Debug("dependency rejected", "task_id", taskID, "dep_id", depID, "reason", "cycle")
		return domain.NewCycleDetectedError(path)
	}

	s.logger.Debug("dependency added", "task_id", taskID, "dep_id", depID)
	return nil
}

// CanExecute reports whether every dependency of taskID has completed.
// A task without dependencies, or an unknown id, is always eligible.
func (s *Scheduler) CanExecute(taskID int) bool {
	for _, depID := range s.graph.DependenciesOf(taskID) {
		if !s.IsCompleted(depID) {
			return false
		}
	}
	return true
}

// ExecuteNext runs at most one task: the highest-priority pending task whose
// dependencies are all complete. Ineligible tasks met along the way stay pending
// with their original ordering.
func (s *Scheduler) ExecuteNext() domain.Outcome {
	if s.queue.Len() == 0 {
		s.logger.Debug("no tasks to execute")
		return domain.NoTasks()
	}

	var deferred []int
	defer func() {
		for _, id := range deferred {
			s.queue.Push(id)
		}
	}()

	for {
		id, ok := s.queue.Pop()
		if !ok {
			break
		}
		if s.CanExecute(id) {
			s.completed[id] = struct{}{}
			s.logger.Debug("task executed", "task_id", id, "deferred", len(deferred))
			return domain.Executed(id)
		}
		deferred = append(deferred, id)
	}

	s.logger.Debug("execution blocked", "deferred", deferred)
	return domain.Blocked(slices.Clone(deferred))
}

// IsCompleted reports whether taskID has executed.
func (s *Scheduler) IsCompleted(taskID int) bool {
	_, ok := s.completed[taskID]
	return ok
}

// Task returns the task with the given id.
func (s *Scheduler) Task(taskID int) (domain.Task, bool) {
	return s.registry.Get(taskID)
}

// Tasks returns every admitted task in admission order, completed or not.
func (s *Scheduler) Tasks() []domain.Task {
	return s.registry.All()
}

// View returns the task annotated with its status.
func (s *Scheduler) View(taskID int) (domain.TaskView, bool) {
	task, ok := s.registry.Get(taskID)
	if !ok {
		return domain.TaskView{}, false
	}
	return domain.TaskView{Task: task, Status: domain.StatusOf(s.IsCompleted(taskID))}, true
}

// DependenciesOf returns the ids taskID depends on, ascending. Unknown ids yield none.
func (s *Scheduler) DependenciesOf(taskID int) []int {
	return s.graph.DependenciesOf(taskID)
}

// DependentsOf returns the ids that depend directly on taskID, ascending.
func (s *Scheduler) DependentsOf(taskID int) []int {
	return s.graph.DependentsOf(taskID)
}

// Dependencies returns every edge ordered by task id, then dependency id.
func (s *Scheduler) Dependencies() []domain.Dependency {
	return s.graph.Edges()
}

// Pending returns the number of tasks not yet executed.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// ListTasks returns a snapshot of every task ordered by descending priority,
// ties broken by ascending id. The snapshot does not alias scheduler state.
func (s *Scheduler) ListTasks() []domain.TaskView {
	tasks := s.registry.All()
	views := make([]domain.TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, domain.TaskView{Task: task, Status: domain.StatusOf(s.IsCompleted(task.ID))})
	}
	slices.SortStableFunc(views, func(a, b domain.TaskView) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return views
}

// Snapshot captures the registry, completed set and dependency graph.
func (s *Scheduler) Snapshot() *domain.State {
	state := domain.NewState()
	for _, task := range s.registry.All() {
		state.Tasks = append(state.Tasks, domain.TaskRecord{
			Task:      domain.NewTask(task.ID, task.Description, task.Priority, task.Deadline),
			Completed: s.IsCompleted(task.ID),
		})
	}
	state.Dependencies = append(state.Dependencies, s.graph.Edges()...)
	return state
}

// Restore rebuilds a scheduler from a snapshot. Edges are replayed through
// AddDependency, so a state naming unknown tasks or containing a cycle is rejected.
func Restore(state *domain.State, opts ...Option) (*Scheduler, error) {
	s := New(opts...)
	if state == nil {
		return s, nil
	}

	records := slices.Clone(state.Tasks)
	slices.SortStableFunc(records, func(a, b domain.TaskRecord) int {
		return cmp.Compare(a.ID, b.ID)
	})

	for _, rec := range records {
		if err := s.registry.insert(domain.NewTask(rec.ID, rec.Description, rec.Priority, rec.Deadline)); err != nil {
			return nil, fmt.Errorf("restoring task: %w", err)
		}
		if rec.Completed {
			s.completed[rec.ID] = struct{}{}
		} else {
			s.queue.Push(rec.ID)
		}
	}

	for _, dep := range state.Dependencies {
		if err := s.AddDependency(dep.TaskID, dep.DepID); err != nil {
			return nil, fmt.Errorf("restoring dependency %d->%d: %w", dep.TaskID, dep.DepID, err)
		}
	}

	s.logger.Debug("state restored", "tasks", s.registry.Len(), "dependencies", s.graph.Len(), "pending", s.queue.Len())
	return s, nil
}
