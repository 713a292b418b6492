package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/airyra/tasksched/internal/api/handler"
	"github.com/airyra/tasksched/internal/api/middleware"
	"github.com/airyra/tasksched/internal/service"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(svc *service.Service, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware chain
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ClientID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery)
	r.Use(middleware.ServiceContext(svc))

	// Initialize handlers
	systemHandler := handler.NewSystemHandler()
	taskHandler := handler.NewTaskHandler()
	dependencyHandler := handler.NewDependencyHandler()

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", systemHandler.Health)
		r.Post("/state/save", systemHandler.SaveState)
		r.Post("/state/load", systemHandler.LoadState)

		// Tasks
		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Get("/tasks/{id}/eligibility", taskHandler.Eligibility)
		r.Post("/execute", taskHandler.ExecuteNext)

		// Dependencies
		r.Get("/tasks/{id}/deps", dependencyHandler.ListDependencies)
		r.Post("/tasks/{id}/deps", dependencyHandler.AddDependency)
		r.Get("/graph", dependencyHandler.Graph)
	})

	return r
}
