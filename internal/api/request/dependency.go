package request

// AddDependencyRequest represents a request to add a dependency.
type AddDependencyRequest struct {
	DepID *int `json:"dep_id"`
}

// Validate validates the add dependency request.
func (r *AddDependencyRequest) Validate() []string {
	var errors []string

	if r.DepID == nil {
		errors = append(errors, "dep_id is required")
	}

	return errors
}
