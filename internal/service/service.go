// Package service serializes access to a scheduler and its store for the HTTP
// server and the CLI.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/logging"
	"github.com/airyra/tasksched/internal/scheduler"
	"github.com/airyra/tasksched/internal/store"
)

// Option configures a Service.
type Option func(*Service)

// WithStore sets the store used by Save, Load and autosave.
func WithStore(st store.Store) Option {
	return func(s *Service) {
		s.store = st
	}
}

// WithAutosave saves after every successful mutation. It has no effect without a store.
func WithAutosave(enabled bool) Option {
	return func(s *Service) {
		s.autosave = enabled
	}
}

// WithLogger sets the logger for the service and its scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service wraps a Scheduler behind a single mutex.
type Service struct {
	mu       sync.Mutex
	sched    *scheduler.Scheduler
	store    store.Store
	autosave bool
	logger   *slog.Logger
}

// New creates a Service over an empty scheduler.
func New(opts ...Option) *Service {
	s := &Service{logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	s.sched = scheduler.New(scheduler.WithLogger(s.logger))
	return s
}

// Open creates a Service whose scheduler is restored from st.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Service, error) {
	s := New(append(opts, WithStore(st))...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// AddTask admits a new task. A task the store could not save is rejected
// with VALIDATION_FAILED before it is admitted.
func (s *Service) AddTask(ctx context.Context, description string, priority int, deadline *string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := domain.NewTask(s.sched.NextID(), description, priority, deadline)
	if err := s.checkLocked(&domain.State{Tasks: []domain.TaskRecord{{Task: candidate}}}); err != nil {
		return domain.Task{}, err
	}

	task := s.sched.AddTask(description, priority, deadline)
	return task, s.autosaveLocked(ctx)
}

// AddDependency records that taskID depends on depID.
func (s *Service) AddDependency(ctx context.Context, taskID, depID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sched.AddDependency(taskID, depID); err != nil {
		return err
	}
	return s.autosaveLocked(ctx)
}

// CanExecute reports whether every dependency of taskID is completed.
func (s *Service) CanExecute(taskID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sched.Task(taskID); !ok {
		return false, domain.NewTaskNotFoundError(taskID)
	}
	return s.sched.CanExecute(taskID), nil
}

// ExecuteNext runs one scheduling step.
func (s *Service) ExecuteNext(ctx context.Context) (domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := s.sched.ExecuteNext()
	if outcome.Kind != domain.OutcomeExecuted {
		return outcome, nil
	}
	return outcome, s.autosaveLocked(ctx)
}

// Get returns a task with its status.
func (s *Service) Get(taskID int) (domain.TaskView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.sched.View(taskID)
	if !ok {
		return domain.TaskView{}, domain.NewTaskNotFoundError(taskID)
	}
	return view, nil
}

// DependenciesOf returns the ids taskID depends on, ascending.
func (s *Service) DependenciesOf(taskID int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sched.Task(taskID); !ok {
		return nil, domain.NewTaskNotFoundError(taskID)
	}
	return s.sched.DependenciesOf(taskID), nil
}

// DependentsOf returns the ids that depend on taskID, ascending.
func (s *Service) DependentsOf(taskID int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sched.Task(taskID); !ok {
		return nil, domain.NewTaskNotFoundError(taskID)
	}
	return s.sched.DependentsOf(taskID), nil
}

// Eligibility reports whether taskID can execute and which of its
// dependencies are still pending.
func (s *Service) Eligibility(taskID int) (bool, []int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sched.Task(taskID); !ok {
		return false, nil, domain.NewTaskNotFoundError(taskID)
	}
	waiting := []int{}
	for _, dep := range s.sched.DependenciesOf(taskID) {
		if !s.sched.IsCompleted(dep) {
			waiting = append(waiting, dep)
		}
	}
	return len(waiting) == 0, waiting, nil
}

// List returns every task, highest priority first.
func (s *Service) List() []domain.TaskView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.ListTasks()
}

// Dependencies returns every edge.
func (s *Service) Dependencies() []domain.Dependency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Dependencies()
}

// Pending returns the number of tasks still queued.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Pending()
}

// Update runs fn with exclusive access to the scheduler. When fn fails, or
// leaves state the store cannot represent, every change it made is discarded;
// otherwise the result is autosaved once.
func (s *Service) Update(ctx context.Context, fn func(*scheduler.Scheduler) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.sched.Snapshot()
	err := fn(s.sched)
	if err == nil {
		err = s.checkLocked(s.sched.Snapshot())
	}
	if err != nil {
		if rerr := s.restoreLocked(before); rerr != nil {
			return rerr
		}
		return err
	}
	return s.autosaveLocked(ctx)
}

// Save writes the current state to the store.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return errNoStore()
	}
	return s.saveLocked(ctx)
}

// Load replaces the scheduler with the stored state. On failure the current
// scheduler is kept.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return errNoStore()
	}

	state, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	restored, err := scheduler.Restore(state, scheduler.WithLogger(s.logger))
	if err != nil {
		return domain.NewPersistenceError(s.store.Path(), err)
	}
	s.sched = restored
	s.logger.Debug("state loaded", "tasks", len(state.Tasks), "dependencies", len(state.Dependencies))
	return nil
}

// Close closes the store, if any.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// checkLocked rejects state the store could not save.
func (s *Service) checkLocked(state *domain.State) error {
	if v, ok := s.store.(store.Validator); ok {
		return v.Validate(state)
	}
	return nil
}

func (s *Service) restoreLocked(state *domain.State) error {
	restored, err := scheduler.Restore(state, scheduler.WithLogger(s.logger))
	if err != nil {
		return domain.NewInternalError(err)
	}
	s.sched = restored
	return nil
}

func (s *Service) autosaveLocked(ctx context.Context) error {
	if !s.autosave || s.store == nil {
		return nil
	}
	return s.saveLocked(ctx)
}

func (s *Service) saveLocked(ctx context.Context) error {
	state := s.sched.Snapshot()
	if err := s.store.Save(ctx, state); err != nil {
		s.logger.Warn("state save failed", "error", err)
		return err
	}
	s.logger.Debug("state saved", "tasks", len(state.Tasks), "dependencies", len(state.Dependencies))
	return nil
}

func errNoStore() error {
	return domain.NewValidationError([]string{"no state store configured"})
}
