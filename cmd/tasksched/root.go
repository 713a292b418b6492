package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/airyra/tasksched/internal/config"
	"github.com/airyra/tasksched/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tasksched",
	Short: "Dependency-aware task scheduler",
	Long: `A task scheduler that runs tasks in priority order once their
dependencies have completed. State is kept in a text file or SQLite database.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Global flags
var (
	jsonOutput  bool
	configPath  string
	statePath   string
	backendName string
	logLevel    string
)

// Resolved by loadConfig before any command runs.
var (
	cfg    *config.Config
	logger *slog.Logger
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a tasksched.toml (default: discovered from the working directory)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "State file or database path")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "State backend: text or sqlite")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig resolves configuration and builds the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	resolved, err := config.ResolveConfig(configPath)
	if err != nil {
		return err
	}
	if err := resolved.Apply(config.Overrides{
		StatePath: statePath,
		Backend:   backendName,
		LogLevel:  logLevel,
	}); err != nil {
		return err
	}

	l, err := logging.New(logging.Options{
		Level:  resolved.LogLevel,
		Format: resolved.LogFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	cfg = resolved
	logger = l
	cmd.SetContext(logging.WithLogger(cmd.Context(), l))
	return nil
}

// Execute runs the root command
func Execute() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errBlocked) {
			printError(rootCmd.ErrOrStderr(), err, jsonOutput)
		}
		os.Exit(mapErrorToExitCode(err))
	}
}
