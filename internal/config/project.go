package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/airyra/tasksched/internal/logging"
	"github.com/airyra/tasksched/internal/store"
)

const (
	// ConfigFileName is the name of the project configuration file
	ConfigFileName = "tasksched.toml"

	// DefaultStatePath is the default state file, relative to the working directory
	DefaultStatePath = "tasks.txt"

	// DefaultBackend is the default persistence backend
	DefaultBackend = store.BackendText

	// DefaultServerHost is the default server host
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default server port
	DefaultServerPort = 7433

	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format
	DefaultLogFormat = logging.FormatText
)

// FileConfig is the raw TOML structure shared by the project and global files.
// Nil fields were not set in the file.
type FileConfig struct {
	State  StateSection  `toml:"state"`
	Server ServerSection `toml:"server"`
	Log    LogSection    `toml:"log"`
}

// StateSection represents the [state] section in TOML
type StateSection struct {
	Path     *string `toml:"path"`
	Backend  *string `toml:"backend"`
	Autosave *bool   `toml:"autosave"`
}

// ServerSection represents the [server] section in TOML
type ServerSection struct {
	Host *string `toml:"host"`
	Port *int    `toml:"port"`
}

// LogSection represents the [log] section in TOML
type LogSection struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// ProjectConfig is a parsed tasksched.toml together with its location.
type ProjectConfig struct {
	FileConfig
	Path string
}

// DiscoverProjectConfig finds and parses tasksched.toml by traversing up the
// directory tree from the current working directory. It returns nil, nil when
// no file exists.
func DiscoverProjectConfig() (*ProjectConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return discoverProjectConfigFrom(cwd)
}

// discoverProjectConfigFrom searches for tasksched.toml starting from the given directory
func discoverProjectConfigFrom(startDir string) (*ProjectConfig, error) {
	dir := startDir

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return ParseProjectConfig(configPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return nil, nil
		}
		dir = parent
	}
}

// ParseProjectConfig parses the tasksched.toml file at the given path. A relative
// state path is resolved against the directory holding the file.
func ParseProjectConfig(path string) (*ProjectConfig, error) {
	fc, err := parseConfigFile(path)
	if err != nil {
		return nil, err
	}

	if p := fc.State.Path; p != nil && !filepath.IsAbs(*p) {
		abs := filepath.Join(filepath.Dir(path), *p)
		fc.State.Path = &abs
	}

	return &ProjectConfig{FileConfig: *fc, Path: path}, nil
}

// WriteProjectConfig writes cfg to path as a tasksched.toml. It refuses to
// overwrite an existing file.
func WriteProjectConfig(path string, cfg *Config) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s already exists", path)
		}
		return fmt.Errorf("failed to create config file: %w", err)
	}

	backend := string(cfg.Backend)
	raw := FileConfig{
		State: StateSection{Path: &cfg.StatePath, Backend: &backend, Autosave: &cfg.Autosave},
		Log:   LogSection{Level: &cfg.LogLevel, Format: &cfg.LogFormat},
	}
	if err := toml.NewEncoder(f).Encode(raw); err != nil {
		f.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return f.Close()
}

func parseConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw FileConfig
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML in %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := raw.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &raw, nil
}

func (fc *FileConfig) validate() error {
	if p := fc.State.Path; p != nil && *p == "" {
		return fmt.Errorf("state.path cannot be empty")
	}
	if b := fc.State.Backend; b != nil {
		if err := validateBackend(store.Backend(*b)); err != nil {
			return err
		}
	}
	if p := fc.Server.Port; p != nil {
		if err := validatePort(*p); err != nil {
			return err
		}
	}
	if l := fc.Log.Level; l != nil {
		if _, err := logging.ParseLevel(*l); err != nil {
			return err
		}
	}
	if f := fc.Log.Format; f != nil && !logging.ValidFormat(*f) {
		return fmt.Errorf("invalid log format %q: use text or json", *f)
	}
	return nil
}

// validatePort checks if the port is in the valid range (1-65535)
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	return nil
}

func validateBackend(b store.Backend) error {
	if !b.IsValid() {
		return fmt.Errorf("invalid backend %q: use %s or %s", b, store.BackendText, store.BackendSQLite)
	}
	return nil
}
