package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var canCmd = &cobra.Command{
	Use:   "can <task-id>",
	Short: "Report whether a task's dependencies are all complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		svc, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		ok, waiting, err := svc.Eligibility(taskID)
		if err != nil {
			return err
		}

		if jsonOutput {
			writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"task_id":    taskID,
				"executable": ok,
				"waiting_on": waiting,
			})
			return nil
		}
		if ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d can be executed.\n", taskID)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task %d is waiting on: %s\n", taskID, joinInts(waiting))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(canCmd)
}
