package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/airyra/tasksched/internal/plan"
	"github.com/airyra/tasksched/internal/scheduler"
)

var importCmd = &cobra.Command{
	Use:   "import <plan.hcl>",
	Short: "Admit the tasks and dependencies declared in an HCL plan",
	Long: `Admit every task block in an HCL plan, then record its depends_on edges.
The import is all or nothing: if any edge is rejected no task is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plan.LoadFile(args[0])
		if err != nil {
			return err
		}

		svc, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		var ids map[string]int
		err = svc.Update(cmd.Context(), func(s *scheduler.Scheduler) error {
			var applyErr error
			ids, applyErr = p.Apply(cmd.Context(), s)
			return applyErr
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			writeJSON(cmd.OutOrStdout(), map[string]interface{}{"tasks": ids})
			return nil
		}
		for _, t := range p.Tasks {
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", ids[t.Label], t.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
