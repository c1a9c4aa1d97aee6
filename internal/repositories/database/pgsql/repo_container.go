package pgsql

import (
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:  &BaseRepository{Pool: dbPool},
		PeriodRepo: newPgxPeriodRepository(dbPool),
		EntryRepo:  newPgxLedgerEntryRepository(dbPool),
		OrderRepo:  newPgxOrderRepository(dbPool),
	}
}
