// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"github.com/javiermolinar/timebox/internal/slot"
	"github.com/javiermolinar/timebox/internal/task"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// GridConfig determines the generated slot sequence.
type GridConfig struct {
	StartHour    int `toml:"start_hour"`    // first slot hour, e.g. 6
	EndHour      int `toml:"end_hour"`      // last slot hour, inclusive, e.g. 23
	SlotInterval int `toml:"slot_interval"` // minutes, must divide 60
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Backend string `toml:"backend"`  // "sqlite" or "json"
	DBPath  string `toml:"db_path"`  // sqlite database file
	DataDir string `toml:"data_dir"` // directory with tasks.json and blocks.json
}

// UIConfig holds TUI and CLI settings.
type UIConfig struct {
	Theme           string `toml:"theme"`            // "mocha", "macchiato", "frappe", "latte"
	Durations       []int  `toml:"durations"`        // choices offered when adding a task
	DefaultDuration int    `toml:"default_duration"` // minutes
	DefaultQuadrant string `toml:"default_quadrant"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty logs to stderr
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			StartHour:    slot.DefaultStartHour,
			EndHour:      slot.DefaultEndHour,
			SlotInterval: slot.DefaultInterval,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			DBPath:  defaultDBPath(),
			DataDir: defaultDataDir(),
		},
		UI: UIConfig{
			Theme:           "frappe",
			Durations:       []int{15, 30, 60},
			DefaultDuration: 30,
			DefaultQuadrant: string(task.QuadrantDo),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   defaultLogFile(),
		},
	}
}

func dataHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "timebox")
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	return filepath.Join(dataHome(), "timebox.db")
}

func defaultDataDir() string {
	return filepath.Join(dataHome(), "json")
}

func defaultLogFile() string {
	return filepath.Join(dataHome(), "timebox.log")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timebox", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.DataDir = expandPath(cfg.Storage.DataDir)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"TIMEBOX_START_HOUR", &cfg.Grid.StartHour},
		{"TIMEBOX_END_HOUR", &cfg.Grid.EndHour},
		{"TIMEBOX_SLOT_INTERVAL", &cfg.Grid.SlotInterval},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", e.key, v)
		}
		*e.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"TIMEBOX_STORAGE_BACKEND", &cfg.Storage.Backend},
		{"TIMEBOX_DB_PATH", &cfg.Storage.DBPath},
		{"TIMEBOX_DATA_DIR", &cfg.Storage.DataDir},
		{"TIMEBOX_UI_THEME", &cfg.UI.Theme},
		{"TIMEBOX_LOG_LEVEL", &cfg.Log.Level},
		{"TIMEBOX_LOG_FILE", &cfg.Log.File},
	}
	for _, e := range strs {
		if v := os.Getenv(e.key); v != "" {
			*e.dst = v
		}
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.SlotGrid(); err != nil {
		return err
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set for the sqlite backend")
		}
	case BackendJSON:
		if c.Storage.DataDir == "" {
			return errors.New("data_dir must be set for the json backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want sqlite or json)", c.Storage.Backend)
	}

	if len(c.UI.Durations) == 0 {
		return errors.New("at least one duration must be configured")
	}
	for _, d := range c.UI.Durations {
		if d <= 0 || d > task.MinutesPerDay {
			return fmt.Errorf("invalid duration: %d", d)
		}
	}
	if c.UI.DefaultDuration <= 0 || c.UI.DefaultDuration > task.MinutesPerDay {
		return fmt.Errorf("invalid default_duration: %d", c.UI.DefaultDuration)
	}
	if _, err := task.ParseQuadrant(c.UI.DefaultQuadrant); err != nil {
		return fmt.Errorf("default_quadrant: %w", err)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// SlotGrid builds the slot grid described by the [grid] section.
func (c *Config) SlotGrid() (*slot.Grid, error) {
	return slot.New(c.Grid.StartHour, c.Grid.EndHour, c.Grid.SlotInterval)
}

// Quadrant returns the configured default quadrant, falling back to DO.
func (c *Config) Quadrant() task.Quadrant {
	q, err := task.ParseQuadrant(c.UI.DefaultQuadrant)
	if err != nil {
		return task.QuadrantDo
	}
	return q
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
