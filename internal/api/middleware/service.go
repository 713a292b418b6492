package middleware

import (
	"context"
	"net/http"

	"github.com/airyra/tasksched/internal/service"
)

// ServiceKey is the context key for the scheduler service.
const ServiceKey contextKey = "service"

// ServiceContext middleware injects the scheduler service into the request context.
func ServiceContext(svc *service.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ServiceKey, svc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetService retrieves the scheduler service from context.
func GetService(ctx context.Context) *service.Service {
	if svc, ok := ctx.Value(ServiceKey).(*service.Service); ok {
		return svc
	}
	return nil
}
