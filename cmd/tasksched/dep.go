package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage task dependencies",
}

var depAddCmd = &cobra.Command{
	Use:   "add <task-id> <depends-on-id>",
	Short: "Record that a task depends on another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		depID, err := parseTaskID(args[1])
		if err != nil {
			return err
		}

		svc, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.AddDependency(cmd.Context(), taskID, depID); err != nil {
			return err
		}

		printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Task %d now depends on %d", taskID, depID), jsonOutput)
		return nil
	},
}

var depListCmd = &cobra.Command{
	Use:   "list <task-id>",
	Short: "List a task's dependencies and dependents",
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

		deps, err := svc.DependenciesOf(taskID)
		if err != nil {
			return err
		}
		dependents, err := svc.DependentsOf(taskID)
		if err != nil {
			return err
		}

		printDependencies(cmd.OutOrStdout(), taskID, deps, dependents, jsonOutput)
		return nil
	},
}

func init() {
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depListCmd)
	rootCmd.AddCommand(depCmd)
}
