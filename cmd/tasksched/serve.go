package main

import (
	"github.com/spf13/cobra"

	"github.com/airyra/tasksched/internal/config"
	"github.com/airyra/tasksched/internal/server"
	"github.com/airyra/tasksched/internal/service"
	"github.com/airyra/tasksched/internal/store"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduler over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Apply(config.Overrides{Host: serveHost, Port: servePort}); err != nil {
			return err
		}

		st, err := store.Open(cfg.Backend, cfg.StatePath)
		if err != nil {
			return err
		}
		svc, err := service.Open(cmd.Context(), st,
			service.WithAutosave(cfg.Autosave),
			service.WithLogger(logger),
		)
		if err != nil {
			st.Close()
			return err
		}

		logger.Info("serving state", "path", cfg.StatePath, "backend", cfg.Backend, "autosave", cfg.Autosave)
		return server.New(cfg.Addr(), svc, logger).ListenAndServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
