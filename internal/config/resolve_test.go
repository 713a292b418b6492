package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/airyra/tasksched/internal/store"
)

// Helper to set up test environment with project and global configs
type testEnv struct {
	projectDir string
	homeDir    string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		projectDir: t.TempDir(),
		homeDir:    t.TempDir(),
	}
	chdir(t, env.projectDir)
	return env
}

func (e *testEnv) writeProjectConfig(t *testing.T, content string) {
	t.Helper()
	configPath := filepath.Join(e.projectDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create project config: %v", err)
	}
}

func TestPrecedence_DefaultsUsed(t *testing.T) {
	env := setupTestEnv(t)

	cfg, err := ResolveConfigWithHome(env.homeDir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Default()
	if *cfg != *want {
		t.Errorf("expected defaults %+v, got %+v", want, cfg)
	}
	if cfg.Addr() != "localhost:7433" {
		t.Errorf("expected addr localhost:7433, got %s", cfg.Addr())
	}
}

func TestPrecedence_ProjectOverridesGlobal(t *testing.T) {
	env := setupTestEnv(t)

	writeGlobal(t, env.homeDir, `
[server]
host = "global-host"
port = 1111

[state]
backend = "sqlite"
autosave = false
`)
	env.writeProjectConfig(t, `
[server]
port = 2222

[state]
backend = "text"
`)

	cfg, err := ResolveConfigWithHome(env.homeDir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerHost != "global-host" {
		t.Errorf("expected host 'global-host', got '%s'", cfg.ServerHost)
	}
	if cfg.ServerPort != 2222 {
		t.Errorf("expected port 2222, got %d", cfg.ServerPort)
	}
	if cfg.Backend != store.BackendText {
		t.Errorf("expected backend text, got %s", cfg.Backend)
	}
	if cfg.Autosave {
		t.Error("expected autosave false from global config")
	}
	if cfg.ProjectFile == "" {
		t.Error("expected ProjectFile to be recorded")
	}
}

func TestResolve_ExplicitPathSkipsDiscovery(t *testing.T) {
	env := setupTestEnv(t)
	env.writeProjectConfig(t, "[log]\nlevel = \"debug\"\n")

	explicit := filepath.Join(t.TempDir(), "other.toml")
	if err := os.WriteFile(explicit, []byte("[log]\nlevel = \"error\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ResolveConfigWithHome(env.homeDir, explicit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected level from explicit file, got %s", cfg.LogLevel)
	}
	if cfg.ProjectFile != explicit {
		t.Errorf("expected ProjectFile %s, got %s", explicit, cfg.ProjectFile)
	}
}

func TestResolve_ExplicitPathMissing(t *testing.T) {
	env := setupTestEnv(t)
	if _, err := ResolveConfigWithHome(env.homeDir, filepath.Join(env.projectDir, "absent.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestResolve_GlobalConfigInvalid(t *testing.T) {
	env := setupTestEnv(t)
	writeGlobal(t, env.homeDir, "not valid toml [[[")

	if _, err := ResolveConfigWithHome(env.homeDir, ""); err == nil {
		t.Fatal("expected error for invalid global config")
	}
}

func TestApply_Overrides(t *testing.T) {
	tests := []struct {
		name    string
		o       Overrides
		wantErr bool
		check   func(*Config) bool
	}{
		{"empty keeps defaults", Overrides{}, false, func(c *Config) bool { return *c == *Default() }},
		{"state path", Overrides{StatePath: "x.txt"}, false, func(c *Config) bool { return c.StatePath == "x.txt" }},
		{"backend", Overrides{Backend: "sqlite"}, false, func(c *Config) bool { return c.Backend == store.BackendSQLite }},
		{"host and port", Overrides{Host: "0.0.0.0", Port: 8080}, false, func(c *Config) bool { return c.Addr() == "0.0.0.0:8080" }},
		{"log level", Overrides{LogLevel: "debug"}, false, func(c *Config) bool { return c.LogLevel == "debug" }},
		{"bad backend", Overrides{Backend: "csv"}, true, nil},
		{"bad port", Overrides{Port: 99999}, true, nil},
		{"bad level", Overrides{LogLevel: "verbose"}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.Apply(tt.o)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("unexpected config: %+v", cfg)
			}
		})
	}
}
