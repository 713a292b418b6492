package main

import (
	"github.com/spf13/cobra"

	"github.com/airyra/tasksched/internal/domain"
	"github.com/airyra/tasksched/internal/listing"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks, highest priority first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var status domain.TaskStatus
		if listStatus != "" {
			status = domain.TaskStatus(listStatus)
			if !status.IsValid() {
				return domain.NewValidationError([]string{"status must be pending or completed"})
			}
		}

		svc, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		views := svc.List()
		if status != "" {
			filtered := views[:0]
			for _, v := range views {
				if v.Status == status {
					filtered = append(filtered, v)
				}
			}
			views = filtered
		}

		if jsonOutput {
			return listing.WriteJSON(cmd.OutOrStdout(), views)
		}
		return listing.WriteText(cmd.OutOrStdout(), views)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show task details",
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

		view, err := svc.Get(taskID)
		if err != nil {
			return err
		}
		deps, err := svc.DependenciesOf(taskID)
		if err != nil {
			return err
		}
		dependents, err := svc.DependentsOf(taskID)
		if err != nil {
			return err
		}

		printTask(cmd.OutOrStdout(), view, deps, dependents, jsonOutput)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only list tasks with this status (pending or completed)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
