package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/config"
	"github.com/javiermolinar/timebox/internal/db"
	"github.com/javiermolinar/timebox/internal/jsonstore"
)

func (a *App) migrateCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy JSON data files into the SQLite database",
		Long: `Copy tasks.json and blocks.json from a directory into the configured
SQLite database. Data is only copied into an empty database, and only
once; duplicate placements of a task on one day are dropped.`,
		Example: `  timebox migrate
  timebox migrate --from=~/backup/timebox`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.config.Storage.Backend != config.BackendSQLite {
				return fmt.Errorf("migrate needs the sqlite backend, configured backend is %q", a.config.Storage.Backend)
			}
			if from == "" {
				from = a.config.Storage.DataDir
			}
			dir, err := resolvePath(from)
			if err != nil {
				return err
			}
			if _, err := os.Stat(filepath.Join(dir, jsonstore.TasksFile)); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("no %s in %s", jsonstore.TasksFile, dir)
				}
				return err
			}

			legacy, err := jsonstore.New(dir)
			if err != nil {
				return err
			}
			defer func() { _ = legacy.Close() }()

			if err := os.MkdirAll(filepath.Dir(a.config.Storage.DBPath), 0o755); err != nil {
				return fmt.Errorf("creating database directory: %w", err)
			}
			s, err := db.New(a.config.Storage.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			copied, err := s.MigrateLegacy(cmd.Context(), legacy)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !copied {
				fmt.Fprintln(w, "Nothing copied: the database already has data or was migrated before.")
				return nil
			}
			tasks, err := s.LoadTasks(cmd.Context())
			if err != nil {
				return err
			}
			blocks, err := s.LoadBlocks(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Migrated %d task(s) and %d block(s) from %s\n", len(tasks), len(blocks), dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Directory holding tasks.json (default: storage.data_dir)")

	return cmd
}

// resolvePath expands a leading ~ and makes path absolute.
func resolvePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
