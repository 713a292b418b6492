package handler

import (
	"net/http"

	"github.com/airyra/tasksched/internal/api/middleware"
	"github.com/airyra/tasksched/internal/api/response"
	"github.com/airyra/tasksched/internal/logging"
)

// SystemHandler handles system-level operations.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HealthResponse is the body of GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Tasks   int    `json:"tasks"`
	Pending int    `json:"pending"`
}

// Health handles GET /v1/health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	svc := middleware.GetService(r.Context())
	response.OK(w, HealthResponse{
		Status:  "ok",
		Tasks:   len(svc.List()),
		Pending: svc.Pending(),
	})
}

// SaveState handles POST /v1/state/save.
func (h *SystemHandler) SaveState(w http.ResponseWriter, r *http.Request) {
	svc := middleware.GetService(r.Context())
	if err := svc.Save(r.Context()); err != nil {
		response.Error(w, err)
		return
	}
	logging.FromContext(r.Context()).Info("state saved", "client", middleware.GetClientID(r.Context()))
	response.NoContent(w)
}

// LoadState handles POST /v1/state/load.
func (h *SystemHandler) LoadState(w http.ResponseWriter, r *http.Request) {
	svc := middleware.GetService(r.Context())
	if err := svc.Load(r.Context()); err != nil {
		response.Error(w, err)
		return
	}
	logging.FromContext(r.Context()).Info("state loaded", "client", middleware.GetClientID(r.Context()))
	response.OK(w, svc.List())
}
