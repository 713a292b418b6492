package config

import (
	"net"
	"os"
	"strconv"

	"github.com/airyra/tasksched/internal/logging"
	"github.com/airyra/tasksched/internal/store"
)

// Config represents the final merged configuration. Precedence order
// (highest to lowest):
// 1. Command-line overrides
// 2. Project config (tasksched.toml, or the explicit --config file)
// 3. Global config (~/.tasksched/config.toml)
// 4. Built-in defaults
type Config struct {
	StatePath  string
	Backend    store.Backend
	Autosave   bool
	ServerHost string
	ServerPort int
	LogLevel   string
	LogFormat  string

	// ProjectFile is the project config that was applied, if any.
	ProjectFile string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		StatePath:  DefaultStatePath,
		Backend:    DefaultBackend,
		Autosave:   true,
		ServerHost: DefaultServerHost,
		ServerPort: DefaultServerPort,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
	}
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// Overrides carries command-line values. Empty fields leave the config untouched.
type Overrides struct {
	StatePath string
	Backend   string
	Host      string
	Port      int
	LogLevel  string
}

// Apply merges o over c and validates the result.
func (c *Config) Apply(o Overrides) error {
	if o.StatePath != "" {
		c.StatePath = o.StatePath
	}
	if o.Backend != "" {
		if err := validateBackend(store.Backend(o.Backend)); err != nil {
			return err
		}
		c.Backend = store.Backend(o.Backend)
	}
	if o.Host != "" {
		c.ServerHost = o.Host
	}
	if o.Port != 0 {
		if err := validatePort(o.Port); err != nil {
			return err
		}
		c.ServerPort = o.Port
	}
	if o.LogLevel != "" {
		if _, err := logging.ParseLevel(o.LogLevel); err != nil {
			return err
		}
		c.LogLevel = o.LogLevel
	}
	return nil
}

func (c *Config) merge(fc *FileConfig) {
	if fc.State.Path != nil {
		c.StatePath = *fc.State.Path
	}
	if fc.State.Backend != nil {
		c.Backend = store.Backend(*fc.State.Backend)
	}
	if fc.State.Autosave != nil {
		c.Autosave = *fc.State.Autosave
	}
	if fc.Server.Host != nil {
		c.ServerHost = *fc.Server.Host
	}
	if fc.Server.Port != nil {
		c.ServerPort = *fc.Server.Port
	}
	if fc.Log.Level != nil {
		c.LogLevel = *fc.Log.Level
	}
	if fc.Log.Format != nil {
		c.LogFormat = *fc.Log.Format
	}
}

// ResolveConfig loads the global config, then the project config (the file at
// explicitPath, or one discovered from the working directory), and merges them
// over the defaults.
func ResolveConfig(explicitPath string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return ResolveConfigWithHome(homeDir, explicitPath)
}

// ResolveConfigWithHome resolves config using a specified home directory.
// This is useful for testing.
func ResolveConfigWithHome(homeDir, explicitPath string) (*Config, error) {
	globalCfg, err := LoadGlobalConfigFromDir(homeDir)
	if err != nil {
		return nil, err
	}

	var projectCfg *ProjectConfig
	if explicitPath != "" {
		projectCfg, err = ParseProjectConfig(explicitPath)
	} else {
		projectCfg, err = DiscoverProjectConfig()
	}
	if err != nil {
		return nil, err
	}

	resolved := Default()
	resolved.merge(globalCfg)
	if projectCfg != nil {
		resolved.merge(&projectCfg.FileConfig)
		resolved.ProjectFile = projectCfg.Path
	}

	return resolved, nil
}
