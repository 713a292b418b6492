package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/service"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Execute the highest-priority runnable task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		_, err = step(cmd.Context(), cmd.OutOrStdout(), svc)
		return err
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute tasks until none remain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		for {
			outcome, err := step(cmd.Context(), cmd.OutOrStdout(), svc)
			if err != nil {
				return err
			}
			if outcome.Kind != domain.OutcomeExecuted {
				return nil
			}
		}
	},
}

// step runs one scheduling step and prints its outcome. A blocked queue is
// reported as errBlocked.
func step(ctx context.Context, w io.Writer, svc *service.Service) (domain.Outcome, error) {
	outcome, err := svc.ExecuteNext(ctx)
	if err != nil {
		return outcome, err
	}

	var view domain.TaskView
	if outcome.Kind == domain.OutcomeExecuted {
		view, _ = svc.Get(outcome.TaskID)
	}

	if jsonOutput {
		body := map[string]interface{}{"outcome": outcome}
		if outcome.Kind == domain.OutcomeExecuted {
			body["task"] = view
		}
		writeJSON(w, body)
	} else {
		printOutcome(w, outcome, view)
	}

	if outcome.Kind == domain.OutcomeBlocked {
		return outcome, errBlocked
	}
	return outcome, nil
}

func init() {
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(runCmd)
}
