package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/airyra/tasksched/internal/client"
	"github.com/airyra/tasksched/internal/config"
	"github.com/airyra/tasksched/internal/identity"
)

var (
	statusHost string
	statusPort int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check a running tasksched server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Apply(config.Overrides{Host: statusHost, Port: statusPort}); err != nil {
			return err
		}

		c := client.NewClient(cfg.ServerHost, cfg.ServerPort, identity.ClientID())
		health, err := c.Health(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			writeJSON(cmd.OutOrStdout(), health)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Server at %s is %s: %d tasks, %d pending\n",
			cfg.Addr(), health.Status, health.Tasks, health.Pending)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusHost, "host", "", "Server host (default from config)")
	statusCmd.Flags().IntVar(&statusPort, "port", 0, "Server port (default from config)")
	rootCmd.AddCommand(statusCmd)
}
