package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/vocly/internal/config"
	"github.com/at-ishikawa/vocly/internal/database"
	"github.com/at-ishikawa/vocly/internal/learning"
	"github.com/at-ishikawa/vocly/internal/statistics"
)

var errUnknownBackend = errors.New("unknown storage backend")

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func learnerLocation(cfg *config.Config) *time.Location {
	return statistics.ParseTimezone(cfg.Learner.Timezone)
}

// openRepository opens the learner's repository on backend. The returned
// close function releases the database connection, if any.
func openRepository(ctx context.Context, cfg *config.Config, backend string) (learning.Repository, func() error, error) {
	switch backend {
	case config.StorageYAML:
		repo, err := learning.NewYAMLRepository(cfg.Storage.YAMLDirectory, cfg.Learner.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("learning.NewYAMLRepository() > %w", err)
		}
		return repo, func() error { return nil }, nil
	case config.StorageDatabase:
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if _, err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		return learning.NewDBRepository(db, cfg.Learner.ID), db.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", errUnknownBackend, backend)
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.Driver == database.DriverSQLite && cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(cfg.Path), err)
		}
	}
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	slog.Debug("connected to database", slog.String("driver", cfg.Driver))
	return db, nil
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
