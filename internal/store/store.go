// Package store selects and opens a state persistence backend.
package store

import (
	"context"
	"fmt"

	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/store/sqlite"
	"github.com/airyra/tasksched/internal/store/textfile"
)

// Backend names a persistence implementation.
type Backend string

const (
	BackendText   Backend = "text"
	BackendSQLite Backend = "sqlite"
)

// ValidBackends returns all supported backends.
func ValidBackends() []Backend {
	return []Backend{BackendText, BackendSQLite}
}

// IsValid checks if the backend is supported.
func (b Backend) IsValid() bool {
	for _, v := range ValidBackends() {
		if b == v {
			return true
		}
	}
	return false
}

// Store saves and loads a full scheduler snapshot.
type Store interface {
	// Path names the file or database the store writes to.
	Path() string
	Save(ctx context.Context, state *domain.State) error
	Load(ctx context.Context) (*domain.State, error)
	Close() error
}

// Validator is implemented by stores that cannot represent every state.
// Validate reports what Save would reject without writing anything.
type Validator interface {
	Validate(state *domain.State) error
}

var (
	_ Store     = (*textfile.Store)(nil)
	_ Store     = (*sqlite.Store)(nil)
	_ Validator = (*textfile.Store)(nil)
)

// Open returns the store for backend at path. An empty backend means text.
func Open(backend Backend, path string) (Store, error) {
	if path == "" {
		return nil, domain.NewValidationError([]string{"state path must not be empty"})
	}

	switch backend {
	case "", BackendText:
		return textfile.New(path), nil
	case BackendSQLite:
		return sqlite.Open(path)
	default:
		return nil, domain.NewValidationError([]string{
			fmt.Sprintf("unknown backend %q (want %q or %q)", backend, BackendText, BackendSQLite),
		})
	}
}
