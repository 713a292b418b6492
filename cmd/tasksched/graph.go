package main

import (
	"github.com/spf13/cobra"

	"github.com/airyra/tasksched/internal/listing"
)

var (
	graphName    string
	graphRankDir string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the dependency graph in Graphviz DOT format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		return listing.WriteDOT(cmd.OutOrStdout(), svc.List(), svc.Dependencies(),
			listing.DOTWithGraphName(graphName),
			listing.DOTWithRankDir(graphRankDir),
		)
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphName, "name", "tasksched", "Graph name")
	graphCmd.Flags().StringVar(&graphRankDir, "rankdir", "LR", "Graph rank direction (LR, TB, RL or BT)")
	rootCmd.AddCommand(graphCmd)
}
