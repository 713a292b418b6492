package handler

import (
	"bytes"
	"net/http"

	"github.com/airyra/tasksched/internal/api/middleware"
	"github.com/airyra/tasksched/internal/api/request"
	"github.com/airyra/tasksched/internal/api/response"
	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/listing"
	"github.com/airyra/tasksched/internal/logging"
)

// DependencyHandler handles dependency operations.
type DependencyHandler struct{}

// NewDependencyHandler creates a new DependencyHandler.
func NewDependencyHandler() *DependencyHandler {
	return &DependencyHandler{}
}

// ListDependencies handles GET /tasks/{id}/deps.
func (h *DependencyHandler) ListDependencies(w http.ResponseWriter, r *http.Request) {
	taskID, err := request.TaskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	deps, err := middleware.GetService(r.Context()).DependenciesOf(taskID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, deps)
}

// AddDependency handles POST /tasks/{id}/deps.
func (h *DependencyHandler) AddDependency(w http.ResponseWriter, r *http.Request) {
	taskID, err := request.TaskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req request.AddDependencyRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		response.Error(w, domain.NewValidationError(errors))
		return
	}

	svc := middleware.GetService(r.Context())
	if err := svc.AddDependency(r.Context(), taskID, *req.DepID); err != nil {
		response.Error(w, err)
		return
	}

	logging.FromContext(r.Context()).Info("dependency added",
		"task_id", taskID, "dep_id", *req.DepID, "client", middleware.GetClientID(r.Context()))
	response.Created(w, domain.NewDependency(taskID, *req.DepID))
}

// Graph handles GET /v1/graph, rendering the dependency graph as Graphviz DOT.
func (h *DependencyHandler) Graph(w http.ResponseWriter, r *http.Request) {
	svc := middleware.GetService(r.Context())

	var buf bytes.Buffer
	if err := listing.WriteDOT(&buf, svc.List(), svc.Dependencies()); err != nil {
		logging.FromContext(r.Context()).Error("graph render failed", "error", err)
		response.Error(w, domain.NewInternalError(err))
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Write(buf.Bytes())
}
