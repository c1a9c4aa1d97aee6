package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/SscSPs/capital_ledger/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// MigratePostgres applies the embedded PostgreSQL migrations. It reports whether any
// migration was applied.
func MigratePostgres(databaseURL string) (bool, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("open database for migrations: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return false, fmt.Errorf("ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return false, fmt.Errorf("create postgres migration driver: %w", err)
	}
	return runMigrations(migrations.Postgres, "postgres", driver)
}

// MigrateSQLite applies the embedded SQLite migrations to the database at dsn.
func MigrateSQLite(dsn string) (bool, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return false, fmt.Errorf("open database for migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		db.Close()
		return false, fmt.Errorf("create sqlite migration driver: %w", err)
	}
	return runMigrations(migrations.SQLite, "sqlite", driver)
}

// runMigrations applies every "up" migration under dir. Closing the migrate instance
// closes the driver and its database.
func runMigrations(fsys fs.FS, dir string, driver migratedb.Driver) (bool, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		driver.Close()
		return false, fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dir, driver)
	if err != nil {
		src.Close()
		driver.Close()
		return false, fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return false, fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return false, fmt.Errorf("migration database error: %w", dbErr)
	}
	return !errors.Is(upErr, migrate.ErrNoChange), nil
}
