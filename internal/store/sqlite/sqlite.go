// Package sqlite persists scheduler state in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/airyra/tasksched/internal/domain"
)

// schema is applied on every open.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id          INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    priority    INTEGER NOT NULL,
    deadline    TEXT,
    completed   INTEGER NOT NULL DEFAULT 0 CHECK (completed IN (0, 1))
);

-- Dependencies table (DAG edges)
CREATE TABLE IF NOT EXISTS dependencies (
    task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
    dep_id  INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
    PRIMARY KEY (task_id, dep_id),
    CHECK (task_id != dep_id)
);

-- Index for finding what depends on a task
CREATE INDEX IF NOT EXISTS idx_dependencies_dep ON dependencies(dep_id);
`

// Store implements state persistence using SQLite.
type Store struct {
	db     *sql.DB
	path   string
	closed bool
}

// Open opens (creating if needed) the database at dsn. The dsn can be a file
// path or ":memory:".
func Open(dsn string) (*Store, error) {
	connStr := dsn
	if !strings.Contains(dsn, "?") {
		connStr += "?"
	} else {
		connStr += "&"
	}
	connStr += "_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, domain.NewPersistenceError(dsn, err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, domain.NewPersistenceError(dsn, fmt.Errorf("failed to initialize schema: %w", err))
	}

	return &Store{db: db, path: dsn}, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Save replaces the stored state with state inside one transaction.
func (s *Store) Save(ctx context.Context, state *domain.State) error {
	if state == nil {
		state = domain.NewState()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM dependencies"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
			return err
		}

		for _, rec := range state.Tasks {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO tasks (id, description, priority, deadline, completed) VALUES (?, ?, ?, ?, ?)",
				rec.ID, rec.Description, rec.Priority, rec.Deadline, boolToInt(rec.Completed),
			)
			if err != nil {
				return fmt.Errorf("failed to insert task %d: %w", rec.ID, err)
			}
		}
		for _, dep := range state.Dependencies {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO dependencies (task_id, dep_id) VALUES (?, ?)",
				dep.TaskID, dep.DepID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert dependency %d->%d: %w", dep.TaskID, dep.DepID, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.NewPersistenceError(s.path, err)
	}
	return nil
}

// Load reads the stored state, tasks ordered by id. An empty database yields an
// empty state.
func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	state := domain.NewState()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, priority, deadline, completed FROM tasks ORDER BY id")
	if err != nil {
		return nil, domain.NewPersistenceError(s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec       domain.TaskRecord
			deadline  sql.NullString
			completed int
		)
		if err := rows.Scan(&rec.ID, &rec.Description, &rec.Priority, &deadline, &completed); err != nil {
			return nil, domain.NewPersistenceError(s.path, err)
		}
		if deadline.Valid {
			rec.Deadline = &deadline.String
		}
		rec.Completed = completed != 0
		state.Tasks = append(state.Tasks, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError(s.path, err)
	}

	depRows, err := s.db.QueryContext(ctx,
		"SELECT task_id, dep_id FROM dependencies ORDER BY task_id, dep_id")
	if err != nil {
		return nil, domain.NewPersistenceError(s.path, err)
	}
	defer depRows.Close()

	for depRows.Next() {
		var dep domain.Dependency
		if err := depRows.Scan(&dep.TaskID, &dep.DepID); err != nil {
			return nil, domain.NewPersistenceError(s.path, err)
		}
		state.Dependencies = append(state.Dependencies, dep)
	}
	if err := depRows.Err(); err != nil {
		return nil, domain.NewPersistenceError(s.path, err)
	}

	return state, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
