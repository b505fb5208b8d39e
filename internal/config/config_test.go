package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/timebox/internal/task"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.StartHour != 6 || cfg.Grid.EndHour != 23 || cfg.Grid.SlotInterval != 15 {
		t.Errorf("expected grid 6-23/15, got %+v", cfg.Grid)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected backend sqlite, got %s", cfg.Storage.Backend)
	}
	if cfg.UI.DefaultDuration != 30 {
		t.Errorf("expected default duration 30, got %d", cfg.UI.DefaultDuration)
	}
	if len(cfg.UI.Durations) != 3 {
		t.Errorf("expected 3 duration choices, got %d", len(cfg.UI.Durations))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Grid.StartHour != 6 {
		t.Errorf("expected default start_hour, got %d", cfg.Grid.StartHour)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[grid]
start_hour = 8
end_hour = 18
slot_interval = 30

[storage]
backend = "json"
data_dir = "/tmp/timebox-data"

[ui]
theme = "latte"
durations = [15, 45, 90]
default_duration = 45
default_quadrant = "schedule"

[log]
level = "debug"
format = "console"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Grid.StartHour != 8 || cfg.Grid.EndHour != 18 || cfg.Grid.SlotInterval != 30 {
		t.Errorf("unexpected grid %+v", cfg.Grid)
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Errorf("expected backend json, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.DataDir != "/tmp/timebox-data" {
		t.Errorf("expected data_dir /tmp/timebox-data, got %s", cfg.Storage.DataDir)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
	if cfg.UI.DefaultDuration != 45 {
		t.Errorf("expected default_duration 45, got %d", cfg.UI.DefaultDuration)
	}
	if cfg.Quadrant() != task.QuadrantSchedule {
		t.Errorf("expected default quadrant SCHEDULE, got %s", cfg.Quadrant())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}

	g, err := cfg.SlotGrid()
	if err != nil {
		t.Fatalf("SlotGrid() error: %v", err)
	}
	if g.Len() != 22 {
		t.Errorf("expected 22 slots for 08:00-18:30 every 30 min, got %d", g.Len())
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[grid]
start_hour = 8

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TIMEBOX_START_HOUR", "7")
	t.Setenv("TIMEBOX_SLOT_INTERVAL", "30")
	t.Setenv("TIMEBOX_DB_PATH", "/tmp/override.db")
	t.Setenv("TIMEBOX_LOG_LEVEL", "warn")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Grid.StartHour != 7 {
		t.Errorf("expected start_hour 7 from env, got %d", cfg.Grid.StartHour)
	}
	if cfg.Grid.SlotInterval != 30 {
		t.Errorf("expected slot_interval 30 from env, got %d", cfg.Grid.SlotInterval)
	}
	if cfg.Storage.DBPath != "/tmp/override.db" {
		t.Errorf("expected db_path from env, got %s", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Log.Level)
	}
}

func TestLoadFrom_InvalidEnvInteger(t *testing.T) {
	t.Setenv("TIMEBOX_END_HOUR", "late")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "TIMEBOX_END_HOUR") {
		t.Errorf("expected error naming TIMEBOX_END_HOUR, got %v", err)
	}
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[grid\nstart_hour = "), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"start after end", func(c *Config) { c.Grid.StartHour = 20; c.Grid.EndHour = 8 }, "grid"},
		{"interval not dividing hour", func(c *Config) { c.Grid.SlotInterval = 25 }, "grid"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "backend"},
		{"sqlite without path", func(c *Config) { c.Storage.DBPath = "" }, "db_path"},
		{"json without dir", func(c *Config) { c.Storage.Backend = BackendJSON; c.Storage.DataDir = "" }, "data_dir"},
		{"no durations", func(c *Config) { c.UI.Durations = nil }, "duration"},
		{"negative duration", func(c *Config) { c.UI.Durations = []int{15, -5} }, "duration"},
		{"zero default duration", func(c *Config) { c.UI.DefaultDuration = 0 }, "default_duration"},
		{"bad quadrant", func(c *Config) { c.UI.DefaultQuadrant = "someday" }, "default_quadrant"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q should mention %q", err, tt.errMsg)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/data/timebox.db", filepath.Join(home, "data/timebox.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Grid.StartHour = 9
	cfg.UI.Theme = "mocha"
	cfg.Storage.DBPath = "/tmp/saved.db"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if loaded.Grid.StartHour != 9 {
		t.Errorf("expected start_hour 9, got %d", loaded.Grid.StartHour)
	}
	if loaded.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", loaded.UI.Theme)
	}
	if loaded.Storage.DBPath != "/tmp/saved.db" {
		t.Errorf("expected db_path /tmp/saved.db, got %s", loaded.Storage.DBPath)
	}
}
