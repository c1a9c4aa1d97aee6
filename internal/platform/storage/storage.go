// Package storage opens the configured ledger database for the server and the CLI.
package storage

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/capital_ledger/internal/platform/config"
	"github.com/SscSPs/capital_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/capital_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/capital_ledger/pkg/database"
)

// Open connects to and migrates the database selected by cfg.DBDriver. The returned
// func releases the connections.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DBDriver == config.DriverSQLite {
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite database opened", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(store), func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}, nil
	}

	if err := Migrate(cfg, logger); err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
}

// Migrate applies pending migrations for the configured driver.
func Migrate(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...", slog.String("driver", cfg.DBDriver))

	var (
		applied bool
		err     error
	)
	if cfg.DBDriver == config.DriverSQLite {
		applied, err = database.MigrateSQLite(sqlite.DSN(cfg.SQLitePath))
	} else {
		applied, err = database.MigratePostgres(cfg.DatabaseURL)
	}
	if err != nil {
		return err
	}

	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
	return nil
}
