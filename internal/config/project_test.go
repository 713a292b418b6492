package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/airyra/tasksched/internal/store"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalWd) })
}

func TestDiscovery_CurrentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("[state]\nbackend = \"sqlite\"\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	chdir(t, tmpDir)

	cfg, err := DiscoverProjectConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config to be found")
	}
	if cfg.State.Backend == nil || *cfg.State.Backend != "sqlite" {
		t.Errorf("expected backend 'sqlite', got %v", cfg.State.Backend)
	}
}

func TestDiscovery_DeeplyNested(t *testing.T) {
	tmpDir := t.TempDir()
	deepDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(deepDir, 0755); err != nil {
		t.Fatalf("failed to create nested directories: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("[store]\npath = \"x\"\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// The nearest file wins, so an unknown section from the top-level file surfaces here.
	if _, err := discoverProjectConfigFrom(deepDir); err == nil {
		t.Fatal("expected parse error from discovered file")
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "a", ConfigFileName), []byte("[log]\nformat = \"json\"\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	cfg, err := discoverProjectConfigFrom(deepDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Path != filepath.Join(tmpDir, "a", ConfigFileName) {
		t.Errorf("expected nearest config, got %s", cfg.Path)
	}
}

func TestDiscovery_NotFound(t *testing.T) {
	cfg, err := discoverProjectConfigFrom(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected no config, got %+v", cfg)
	}
}

func TestParse_RelativeStatePath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("[state]\npath = \"data/tasks.txt\"\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	cfg, err := ParseProjectConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(tmpDir, "data", "tasks.txt")
	if cfg.State.Path == nil || *cfg.State.Path != want {
		t.Errorf("expected path %q, got %v", want, cfg.State.Path)
	}
}

func TestParse_AbsoluteStatePath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	abs := filepath.Join(t.TempDir(), "elsewhere.db")
	content := "[state]\npath = \"" + filepath.ToSlash(abs) + "\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	cfg, err := ParseProjectConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.State.Path == nil || filepath.Clean(*cfg.State.Path) != filepath.Clean(abs) {
		t.Errorf("expected path %q, got %v", abs, cfg.State.Path)
	}
}

func TestParse_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"zero", "0"},
		{"negative", "-1"},
		{"too high", "65536"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), ConfigFileName)
			content := "[server]\nport = " + tt.port + "\n"
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to create test config: %v", err)
			}

			_, err := ParseProjectConfig(configPath)
			if err == nil {
				t.Fatal("expected error for invalid port")
			}
			if !strings.Contains(err.Error(), "port") {
				t.Errorf("expected error about port, got: %v", err)
			}
		})
	}
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := ParseProjectConfig(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteProjectConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := Default()
	cfg.StatePath = "plan.db"
	cfg.Backend = store.BackendSQLite
	cfg.Autosave = false

	if err := WriteProjectConfig(path, cfg); err != nil {
		t.Fatalf("WriteProjectConfig() failed: %v", err)
	}

	parsed, err := ParseProjectConfig(path)
	if err != nil {
		t.Fatalf("ParseProjectConfig() failed: %v", err)
	}
	if parsed.State.Backend == nil || *parsed.State.Backend != "sqlite" {
		t.Errorf("backend = %v, want sqlite", parsed.State.Backend)
	}
	if parsed.State.Autosave == nil || *parsed.State.Autosave {
		t.Errorf("autosave = %v, want false", parsed.State.Autosave)
	}
	if parsed.State.Path == nil || *parsed.State.Path != filepath.Join(filepath.Dir(path), "plan.db") {
		t.Errorf("path = %v", parsed.State.Path)
	}
}

func TestWriteProjectConfig_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("# mine\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteProjectConfig(path, Default()); err == nil {
		t.Fatal("expected error for existing file")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# mine\n" {
		t.Errorf("existing file was modified: %q", data)
	}
}
