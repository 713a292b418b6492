package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/store/textfile"
)

// CreateTaskRequest represents a request to create a task.
type CreateTaskRequest struct {
	Description string  `json:"description"`
	Priority    int     `json:"priority"`
	Deadline    *string `json:"deadline,omitempty"`
}

// Validate validates the create task request.
func (r *CreateTaskRequest) Validate() []string {
	var errors []string

	if r.Description == "" {
		errors = append(errors, "description is required")
	}
	if strings.ContainsAny(r.Description, "\r\n") {
		errors = append(errors, "description must be a single line")
	}
	if r.Deadline != nil {
		if strings.ContainsAny(*r.Deadline, "\r\n|") {
			errors = append(errors, `deadline must be a single line without "|"`)
		}
		if *r.Deadline == textfile.NoDeadline {
			errors = append(errors, fmt.Sprintf("deadline %q is reserved", textfile.NoDeadline))
		}
	}

	return errors
}

// DecodeJSON decodes JSON from request body into the given value.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// TaskID parses the {id} URL parameter.
func TaskID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError([]string{fmt.Sprintf("invalid task id %q", raw)})
	}
	return id, nil
}

// Pagination contains pagination parameters.
type Pagination struct {
	Page    int
	PerPage int
}

// DefaultPage is the default page number.
const DefaultPage = 1

// DefaultPerPage is the default items per page.
const DefaultPerPage = 50

// MaxPerPage is the maximum items per page.
const MaxPerPage = 100

// ParsePagination extracts pagination from query parameters.
func ParsePagination(r *http.Request) Pagination {
	page := DefaultPage
	perPage := DefaultPerPage

	if p := r.URL.Query().Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if pp := r.URL.Query().Get("per_page"); pp != "" {
		if v, err := strconv.Atoi(pp); err == nil && v > 0 {
			perPage = v
		}
	}

	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Pagination{Page: page, PerPage: perPage}
}

// Window returns the [start, end) bounds of the page within total items.
func (p Pagination) Window(total int) (start, end int) {
	start = (p.Page - 1) * p.PerPage
	if start > total {
		start = total
	}
	end = start + p.PerPage
	if end > total {
		end = total
	}
	return start, end
}

// ParseStatus extracts status filter from query parameters.
func ParseStatus(r *http.Request) *domain.TaskStatus {
	s := r.URL.Query().Get("status")
	if s == "" {
		return nil
	}

	status := domain.TaskStatus(s)
	if !status.IsValid() {
		return nil
	}
	return &status
}
