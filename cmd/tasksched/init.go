package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/airyra/tasksched/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a tasksched.toml in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		path := filepath.Join(cwd, config.ConfigFileName)

		// Record the flag values, not state resolved from an outer project.
		fresh := config.Default()
		if err := fresh.Apply(config.Overrides{StatePath: statePath, Backend: backendName, LogLevel: logLevel}); err != nil {
			return err
		}
		if err := config.WriteProjectConfig(path, fresh); err != nil {
			return err
		}

		printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Created %s", path), jsonOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
