package scheduler

import (
	"fmt"

	"github.com/airyra/tasksched/internal/domain"
)

// Registry owns the canonical record of every task ever admitted.
type Registry struct {
	tasks  map[int]domain.Task
	order  []int
	nextID int
}

// NewRegistry creates an empty registry. The first id handed out is 1.
func NewRegistry() *Registry {
	return &Registry{
		tasks:  make(map[int]domain.Task),
		nextID: 1,
	}
}

// Add allocates a new id and stores the task. It never fails.
func (r *Registry) Add(description string, priority int, deadline *string) domain.Task {
	task := domain.NewTask(r.nextID, description, priority, deadline)
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	r.nextID++
	return task
}

// insert stores a task with a preassigned id, used when restoring state.
// Ids must arrive in ascending order.
func (r *Registry) insert(task domain.Task) error {
	if task.ID <= 0 {
		return fmt.Errorf("task id %d must be positive", task.ID)
	}
	if _, ok := r.tasks[task.ID]; ok {
		return fmt.Errorf("duplicate task id %d", task.ID)
	}
	if len(r.order) > 0 && task.ID < r.order[len(r.order)-1] {
		return fmt.Errorf("task id %d out of order", task.ID)
	}
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	if task.ID >= r.nextID {
		r.nextID = task.ID + 1
	}
	return nil
}

// Get returns a copy of the task with the given id.
func (r *Registry) Get(id int) (domain.Task, bool) {
	task, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	return clone(task), true
}

// Has reports whether id names an admitted task.
func (r *Registry) Has(id int) bool {
	_, ok := r.tasks[id]
	return ok
}

// All returns a copy of every task in insertion order.
func (r *Registry) All() []domain.Task {
	all := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, clone(r.tasks[id]))
	}
	return all
}

// Len returns the number of admitted tasks.
func (r *Registry) Len() int {
	return len(r.order)
}

// NextID returns the id the next Add will allocate.
func (r *Registry) NextID() int {
	return r.nextID
}

// clone copies t so callers cannot write through its deadline pointer.
func clone(t domain.Task) domain.Task {
	return domain.NewTask(t.ID, t.Description, t.Priority, t.Deadline)
}

func (r *Registry) priorityOf(id int) int {
	return r.tasks[id].Priority
}
