package handler

import (
	"net/http"

	"github.com/airyra/tasksched/internal/api/middleware"
	"github.com/airyra/tasksched/internal/api/request"
	"github.com/airyra/tasksched/internal/api/response"
	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/logging"
)

// TaskHandler handles task operations.
type TaskHandler struct{}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		response.Error(w, domain.NewValidationError(errors))
		return
	}

	svc := middleware.GetService(r.Context())
	task, err := svc.AddTask(r.Context(), req.Description, req.Priority, req.Deadline)
	if err != nil {
		response.Error(w, err)
		return
	}

	logging.FromContext(r.Context()).Info("task added",
		"task_id", task.ID, "client", middleware.GetClientID(r.Context()))
	response.Created(w, domain.TaskView{Task: task, Status: domain.StatusPending})
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := request.TaskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	view, err := middleware.GetService(r.Context()).Get(taskID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, view)
}

// ListTasks handles GET /tasks. Tasks are ordered by priority, highest first,
// and may be filtered by ?status=pending|completed.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	pagination := request.ParsePagination(r)
	status := request.ParseStatus(r)

	views := middleware.GetService(r.Context()).List()
	filtered := make([]domain.TaskView, 0, len(views))
	for _, v := range views {
		if status == nil || v.Status == *status {
			filtered = append(filtered, v)
		}
	}

	start, end := pagination.Window(len(filtered))
	response.Paginated(w, filtered[start:end], pagination.Page, pagination.PerPage, len(filtered))
}

// EligibilityResponse is the body of GET /tasks/{id}/eligibility.
type EligibilityResponse struct {
	TaskID     int   `json:"task_id"`
	Executable bool  `json:"executable"`
	Waiting    []int `json:"waiting_on"`
}

// Eligibility handles GET /tasks/{id}/eligibility.
func (h *TaskHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	taskID, err := request.TaskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	ok, waiting, err := middleware.GetService(r.Context()).Eligibility(taskID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, EligibilityResponse{TaskID: taskID, Executable: ok, Waiting: waiting})
}

// ExecuteResponse is the body of POST /v1/execute.
type ExecuteResponse struct {
	domain.Outcome
	Task *domain.TaskView `json:"task,omitempty"`
}

// ExecuteNext handles POST /v1/execute.
func (h *TaskHandler) ExecuteNext(w http.ResponseWriter, r *http.Request) {
	svc := middleware.GetService(r.Context())
	outcome, err := svc.ExecuteNext(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	resp := ExecuteResponse{Outcome: outcome}
	if outcome.Kind == domain.OutcomeExecuted {
		if view, err := svc.Get(outcome.TaskID); err == nil {
			resp.Task = &view
		}
		logging.FromContext(r.Context()).Info("task executed",
			"task_id", outcome.TaskID, "client", middleware.GetClientID(r.Context()))
	}

	response.OK(w, resp)
}
