package domain

// TaskRecord is a persisted task together with its completion flag.
type TaskRecord struct {
	Task
	Completed bool `json:"completed"`
}

// State is the serializable form of a scheduler: every task ever admitted, its
// completion flag, and every dependency edge.
type State struct {
	Tasks        []TaskRecord `json:"tasks"`
	Dependencies []Dependency `json:"dependencies"`
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		Tasks:        []TaskRecord{},
		Dependencies: []Dependency{},
	}
}
