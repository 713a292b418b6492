package textfile

import (
	"bytes"
	"context"
	"errors"
	"os"

	"github.com/airyra/tasksched/internal/domain"
)

// Store keeps state in a single text file.
type Store struct {
	path string
}

// New creates a store backed by the file at path. The file is not touched until
// Save or Load is called.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Save overwrites the file with state. It fails with PERSISTENCE_FAILURE when the
// file cannot be opened for writing; the state passed in is never modified.
func (s *Store) Save(ctx context.Context, state *domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, state); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return domain.NewPersistenceError(s.path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return domain.NewPersistenceError(s.path, err)
	}
	if err := f.Close(); err != nil {
		return domain.NewPersistenceError(s.path, err)
	}
	return nil
}

// Load reads state from the file. A missing file yields an empty state.
func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewState(), nil
		}
		return nil, domain.NewPersistenceError(s.path, err)
	}
	defer f.Close()

	state, err := Decode(f)
	if err != nil {
		return nil, domain.NewPersistenceError(s.path, err)
	}
	return state, nil
}

// Validate reports, as a VALIDATION_FAILED error, the values in state that the
// text format cannot represent.
func (s *Store) Validate(state *domain.State) error {
	if state == nil {
		return nil
	}
	return validate(state)
}

// Close is a no-op; the file is opened per call.
func (s *Store) Close() error {
	return nil
}
