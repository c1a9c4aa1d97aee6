// Package sqlite stores the ledger in a single SQLite file. It serves local deployments,
// the admin CLI and the repository tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"

	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/capital_ledger/pkg/database"
	_ "modernc.org/sqlite"
)

// Store holds one writer connection and a pool of readers. The single writer with
// immediate transactions serializes every balance mutation.
type Store struct {
	writer *sql.DB
	reader *sql.DB
}

// DSN returns the connection string used for the database file at path.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_txlock=immediate", path)
}

// Open opens (creating if needed) and migrates the database at path.
func Open(path string) (*Store, error) {
	dsn := DSN(path)

	if _, err := database.MigrateSQLite(dsn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(runtime.NumCPU())

	return &Store{writer: writer, reader: reader}, nil
}

func (s *Store) Close() error {
	err1 := s.writer.Close()
	err2 := s.reader.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// Ping checks both connections.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.writer.PingContext(ctx); err != nil {
		return err
	}
	return s.reader.PingContext(ctx)
}

// WithinTx runs fn in an immediate transaction on the writer connection.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return mapSQLiteError(err, "begin transaction")
	}
	defer tx.Rollback()

	if err := fn(ctx, &sqliteLedgerTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapSQLiteError(err, "commit transaction")
	}
	return nil
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:  s,
		PeriodRepo: s,
		EntryRepo:  s,
		OrderRepo:  s,
	}
}

var (
	_ portsrepo.TransactionManager          = (*Store)(nil)
	_ portsrepo.PeriodReader                = (*Store)(nil)
	_ portsrepo.LedgerEntryRepositoryFacade = (*Store)(nil)
	_ portsrepo.OrderReader                 = (*Store)(nil)
)
