package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/airyra/tasksched/internal/client"
	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/service"
	"github.com/airyra/tasksched/internal/store"
)

// errBlocked reports that pending tasks remain but none can run. The deferred
// ids have already been printed when it is returned.
var errBlocked = errors.New("no pending task can run")

// openService loads state from the configured store. Every mutation is saved
// before the command returns.
func openService(ctx context.Context) (*service.Service, error) {
	st, err := store.Open(cfg.Backend, cfg.StatePath)
	if err != nil {
		return nil, err
	}
	svc, err := service.Open(ctx, st, service.WithAutosave(true), service.WithLogger(logger))
	if err != nil {
		st.Close()
		return nil, err
	}
	return svc, nil
}

// mapErrorToExitCode maps an error to the appropriate exit code
func mapErrorToExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, errBlocked) {
		return ExitBlocked
	}
	if errors.Is(err, client.ErrServerNotRunning) {
		return ExitServerNotRunning
	}

	switch domain.CodeOf(err) {
	case domain.ErrCodeInvalidReference, domain.ErrCodeTaskNotFound:
		return ExitInvalidReference
	case domain.ErrCodeCycleDetected:
		return ExitCycleDetected
	case domain.ErrCodePersistenceFailure:
		return ExitPersistence
	default:
		return ExitGeneralError
	}
}

// parseTaskID parses a task id argument
func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError([]string{fmt.Sprintf("invalid task id %q", s)})
	}
	return id, nil
}
