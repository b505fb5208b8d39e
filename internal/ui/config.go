package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/config"
	"github.com/javiermolinar/timebox/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  timebox config
  timebox config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if show {
				printConfig(cmd.OutOrStdout(), a.config)
				return nil
			}
			return runConfigInteractive(os.Stdin, cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the active configuration and exit")

	return cmd
}

func runConfigInteractive(in io.Reader, w io.Writer, configPath string) error {
	fmt.Fprintf(w, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(w, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(w, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(w, cfg)

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNo(reader, w, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	cfg.Grid.StartHour = promptInt(reader, w, "First slot hour", cfg.Grid.StartHour)
	cfg.Grid.EndHour = promptInt(reader, w, "Last slot hour", cfg.Grid.EndHour)
	cfg.Grid.SlotInterval = promptInt(reader, w, "Slot interval (minutes)", cfg.Grid.SlotInterval)
	cfg.Storage.Backend = promptValue(reader, w, "Storage backend (sqlite, json)", cfg.Storage.Backend)
	cfg.Storage.DBPath = promptValue(reader, w, "Database path", cfg.Storage.DBPath)
	cfg.Storage.DataDir = promptValue(reader, w, "JSON data directory", cfg.Storage.DataDir)
	cfg.UI.Theme = promptTheme(reader, w, cfg.UI.Theme)
	cfg.UI.DefaultDuration = promptInt(reader, w, "Default duration (minutes)", cfg.UI.DefaultDuration)
	cfg.UI.DefaultQuadrant = strings.ToUpper(promptValue(reader, w, "Default quadrant", cfg.UI.DefaultQuadrant))
	cfg.Log.Level = promptValue(reader, w, "Log level", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(w, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[grid]")
	fmt.Fprintf(w, "  start_hour       = %d\n", cfg.Grid.StartHour)
	fmt.Fprintf(w, "  end_hour         = %d\n", cfg.Grid.EndHour)
	fmt.Fprintf(w, "  slot_interval    = %d\n", cfg.Grid.SlotInterval)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  backend          = %s\n", cfg.Storage.Backend)
	fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(w, "  data_dir         = %s\n", cfg.Storage.DataDir)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  durations        = %s\n", joinInts(cfg.UI.Durations))
	fmt.Fprintf(w, "  default_duration = %d\n", cfg.UI.DefaultDuration)
	fmt.Fprintf(w, "  default_quadrant = %s\n", cfg.UI.DefaultQuadrant)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level            = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format           = %s\n", cfg.Log.Format)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "  file             = %s\n", cfg.Log.File)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, w io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, w, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(w, "  Invalid number %q\n", value)
		if value == strconv.Itoa(current) {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, w io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
		if value == current {
			return current
		}
	}
}
