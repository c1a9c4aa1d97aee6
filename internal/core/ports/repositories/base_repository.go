package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// WithinTx calls fn with a transaction-scoped LedgerTx. The transaction commits when fn
	// returns nil and rolls back otherwise, so a failed balance check leaves no partial writes.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// LedgerTx holds the writes that must commit together with a balance change.
// Rows returned by the Lock* methods stay locked until the transaction ends.
type LedgerTx interface {
	// LockPeriod returns the period for key, creating it first when absent with capital
	// carried forward from the previous calendar month (zero when that does not exist either).
	LockPeriod(ctx context.Context, key domain.PeriodKey, now time.Time) (*domain.Period, error)

	// EnsurePeriod inserts a period with the given opening capital and zero profit and revenue.
	// It reports false and leaves the row alone when the period already exists.
	EnsurePeriod(ctx context.Context, key domain.PeriodKey, openingCapital decimal.Decimal, now time.Time) (bool, error)

	// SavePeriodBalances writes profit, revenue, capital, reset and update stamps of a locked period.
	SavePeriodBalances(ctx context.Context, period domain.Period) error

	// SaveLedgerEntry inserts a new ledger entry.
	SaveLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error

	// SaveOrder inserts a new order.
	SaveOrder(ctx context.Context, order domain.Order) error

	// LockOrder returns the order by ID with its row locked.
	LockOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// UpdateOrder writes every mutable column of an order.
	UpdateOrder(ctx context.Context, order domain.Order) error
}
