package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Both the PostgreSQL and the SQLite adapters fill it.
type RepositoryProvider struct {
	TxManager  TransactionManager
	PeriodRepo PeriodReader
	EntryRepo  LedgerEntryRepositoryFacade
	OrderRepo  OrderReader
}
