package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/javiermolinar/timebox/internal/config"
	"github.com/javiermolinar/timebox/internal/db"
	"github.com/javiermolinar/timebox/internal/jsonstore"
	"github.com/javiermolinar/timebox/internal/planner"
	"github.com/javiermolinar/timebox/internal/task"
)

// ensurePlanner opens the configured repository and loads the planner on
// first use.
func (a *App) ensurePlanner(ctx context.Context) (*planner.Planner, error) {
	if a.planner != nil {
		return a.planner, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	grid, err := a.config.SlotGrid()
	if err != nil {
		return nil, err
	}

	repo, err := a.openRepository(ctx)
	if err != nil {
		return nil, err
	}

	p := planner.New(repo, grid, a.clock, a.log.Named("planner"))
	if err := p.Load(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}

	a.repo = repo
	a.planner = p
	return p, nil
}

func (a *App) openRepository(ctx context.Context) (task.Repository, error) {
	switch a.config.Storage.Backend {
	case config.BackendJSON:
		s, err := jsonstore.New(a.config.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening json store: %w", err)
		}
		return s, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(a.config.Storage.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		s, err := db.New(a.config.Storage.DBPath)
		if err != nil {
			return nil, err
		}
		a.migrateLegacyOnce(ctx, s)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", a.config.Storage.Backend)
	}
}

// migrateLegacyOnce copies the JSON data directory into a fresh SQLite
// database. Failures are logged; the database stays usable.
func (a *App) migrateLegacyOnce(ctx context.Context, s *db.SQLite) {
	dir := a.config.Storage.DataDir
	if dir == "" {
		return
	}
	if _, err := os.Stat(filepath.Join(dir, jsonstore.TasksFile)); errors.Is(err, os.ErrNotExist) {
		return
	}

	legacy, err := jsonstore.New(dir)
	if err != nil {
		a.log.Warn("opening legacy store failed", zap.String("dir", dir), zap.Error(err))
		return
	}
	copied, err := s.MigrateLegacy(ctx, legacy)
	if err != nil {
		a.log.Warn("legacy migration failed", zap.String("dir", dir), zap.Error(err))
		return
	}
	if copied {
		a.log.Info("migrated legacy data", zap.String("dir", dir))
	}
}

// Close releases the repository.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	a.planner = nil
	return err
}
