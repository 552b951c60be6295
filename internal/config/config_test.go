package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points XDG_CONFIG_HOME and HOME at a temp dir and clears any
// PARTNERS_ overrides from the developer's environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{"PARTNERS_BACKEND_URL", "PARTNERS_BACKEND_API_KEY", "PARTNERS_DATABASE_PATH", "PARTNERS_THEME_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	configDir := filepath.Join(dir, "partners")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	path := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.AddPartner != "a" {
		t.Errorf("Default AddPartner key = %s, want a", defaults.AddPartner)
	}
	if defaults.GrabCard != "space" {
		t.Errorf("Default GrabCard key = %q, want space", defaults.GrabCard)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.KeyMappings.Quit != "q" {
		t.Errorf("Loaded config Quit key = %s, want q (default)", cfg.KeyMappings.Quit)
	}
	if cfg.Backend.Remote() {
		t.Errorf("no backend configured, got url %q", cfg.Backend.URL)
	}
	if cfg.Backend.Table != "design_partners" {
		t.Errorf("Backend.Table = %q, want design_partners", cfg.Backend.Table)
	}
	if want := filepath.Join(dir, ".partners", "partners.db"); cfg.Database.Path != want {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, want)
	}
	if len(cfg.Stages.Defaults) != 4 || cfg.Stages.Defaults[0] != "Design" {
		t.Errorf("Stages.Defaults = %v, want the four pipeline stages", cfg.Stages.Defaults)
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `backend:
  url: "https://acme.example.co"
  api_key: "anon-key"
stages:
  defaults: [Intro, Pilot]
key_mappings:
  quit: "x"
  add_partner: "n"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if !cfg.Backend.Remote() || cfg.Backend.APIKey != "anon-key" {
		t.Errorf("Backend = %+v, want remote with api key", cfg.Backend)
	}
	if cfg.KeyMappings.Quit != "x" {
		t.Errorf("Loaded Quit key = %s, want x", cfg.KeyMappings.Quit)
	}
	if cfg.KeyMappings.AddPartner != "n" {
		t.Errorf("Loaded AddPartner key = %s, want n", cfg.KeyMappings.AddPartner)
	}
	if len(cfg.Stages.Defaults) != 2 || cfg.Stages.Defaults[1] != "Pilot" {
		t.Errorf("Stages.Defaults = %v, want [Intro Pilot]", cfg.Stages.Defaults)
	}

	// Unspecified values should use defaults
	if cfg.KeyMappings.EditPartner != "e" {
		t.Errorf("Loaded EditPartner key = %s, want e (default)", cfg.KeyMappings.EditPartner)
	}
	if cfg.Backend.Table != "design_partners" {
		t.Errorf("Backend.Table = %q, want default", cfg.Backend.Table)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "database:\n  path: /from/file.db\n")
	t.Setenv("PARTNERS_DATABASE_PATH", "/from/env.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Database.Path != "/from/env.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
}

func TestLoadConfigExpandsHome(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "database:\n  path: ~/data/p.db\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if want := filepath.Join(dir, "data", "p.db"); cfg.Database.Path != want {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, want)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"backend without scheme", "backend:\n  url: acme.example.co\n  api_key: k\n"},
		{"backend without key", "backend:\n  url: https://acme.example.co\n"},
		{"duplicate stage", "stages:\n  defaults: [A, A]\n"},
		{"blank stage", "stages:\n  defaults: [A, \" \"]\n"},
		{"bad yaml", "backend: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, tt.content)

			if _, err := Load(""); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	tempDir := isolate(t)

	cfg := Default()
	cfg.KeyMappings.Quit = "x"
	cfg.Backend.URL = "https://acme.example.co"
	cfg.Backend.APIKey = "anon-key"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	configPath := filepath.Join(tempDir, "partners", "config.yaml")
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Config file not created at %s", configPath)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}

	cfg2, err := Load("")
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}

	if cfg2.KeyMappings.Quit != "x" {
		t.Errorf("Reloaded Quit key = %s, want x", cfg2.KeyMappings.Quit)
	}
	if cfg2.Backend.APIKey != "anon-key" {
		t.Errorf("Reloaded api key = %q", cfg2.Backend.APIKey)
	}
}

func TestLoadDaemonSection(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `daemon:
  socket: /tmp/p.sock
  ping_interval: 5s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Daemon.Socket != "/tmp/p.sock" {
		t.Errorf("Daemon.Socket = %q", cfg.Daemon.Socket)
	}
	if cfg.Daemon.PingInterval != 5*time.Second {
		t.Errorf("Daemon.PingInterval = %v, want 5s", cfg.Daemon.PingInterval)
	}
	if cfg.Daemon.ClientBuffer != 16 {
		t.Errorf("Daemon.ClientBuffer = %d, want default 16", cfg.Daemon.ClientBuffer)
	}
}
