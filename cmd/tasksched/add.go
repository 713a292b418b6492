package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addPriority int
	addDeadline string
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		var deadline *string
		if cmd.Flags().Changed("deadline") {
			deadline = &addDeadline
		}

		task, err := svc.AddTask(cmd.Context(), args[0], addPriority, deadline)
		if err != nil {
			return err
		}

		if jsonOutput {
			writeJSON(cmd.OutOrStdout(), task)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", task.ID, task.Description)
		return nil
	},
}

func init() {
	addCmd.Flags().IntVarP(&addPriority, "priority", "p", 0, "Priority (higher runs first)")
	addCmd.Flags().StringVarP(&addDeadline, "deadline", "d", "", "Deadline label, stored verbatim")
	rootCmd.AddCommand(addCmd)
}
