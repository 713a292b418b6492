package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const (
	// ClientIDKey is the context key for the client ID.
	ClientIDKey contextKey = "clientID"
	// ClientHeader is the HTTP header name for the client ID.
	ClientHeader = "X-Tasksched-Client"
	// DefaultClientID is used when no client header is provided.
	DefaultClientID = "anonymous"
)

// ClientID middleware extracts the X-Tasksched-Client header and adds it to context.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := r.Header.Get(ClientHeader)
		if clientID == "" {
			clientID = DefaultClientID
		}

		ctx := context.WithValue(r.Context(), ClientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID retrieves the client ID from context.
func GetClientID(ctx context.Context) string {
	if clientID, ok := ctx.Value(ClientIDKey).(string); ok {
		return clientID
	}
	return DefaultClientID
}
