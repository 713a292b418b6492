package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/airyra/tasksched/internal/api/response"
	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/logging"
)

// Recovery middleware catches panics and returns a 500 error.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.FromContext(r.Context()).Error("panic recovered",
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				response.Error(w, domain.NewInternalError(nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
