package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/capital_ledger/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// pgxLedgerTx implements portsrepo.LedgerTx on one pgx transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

const insertCarriedPeriodQuery = `
	INSERT INTO periods (period_id, year, month, monthly_profit, monthly_revenue, overall_capital, created_at, updated_at)
	VALUES ($1, $2, $3, 0, 0,
	        COALESCE((SELECT overall_capital FROM periods WHERE year = $4 AND month = $5), 0),
	        $6, $6)
	ON CONFLICT (year, month) DO NOTHING;
`

func (t *pgxLedgerTx) LockPeriod(ctx context.Context, key domain.PeriodKey, now time.Time) (*domain.Period, error) {
	prev := key.Prev()
	_, err := t.tx.Exec(ctx, insertCarriedPeriodQuery,
		uuid.NewString(), key.Year, key.Month, prev.Year, prev.Month, now)
	if err != nil {
		return nil, mapPgError(err, "failed to create period "+key.String())
	}

	row := t.tx.QueryRow(ctx, selectPeriodQuery+` WHERE year = $1 AND month = $2 FOR UPDATE;`, key.Year, key.Month)
	period, err := scanPeriod(row)
	if err != nil {
		return nil, mapPgError(err, "failed to lock period "+key.String())
	}
	return period, nil
}

func (t *pgxLedgerTx) EnsurePeriod(ctx context.Context, key domain.PeriodKey, openingCapital decimal.Decimal, now time.Time) (bool, error) {
	query := `
		INSERT INTO periods (period_id, year, month, monthly_profit, monthly_revenue, overall_capital, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, $4, $5, $5)
		ON CONFLICT (year, month) DO NOTHING;
	`
	tag, err := t.tx.Exec(ctx, query, uuid.NewString(), key.Year, key.Month, openingCapital, now)
	if err != nil {
		return false, mapPgError(err, "failed to ensure period "+key.String())
	}
	return tag.RowsAffected() == 1, nil
}

func (t *pgxLedgerTx) SavePeriodBalances(ctx context.Context, period domain.Period) error {
	m := mapping.ToModelPeriod(period)
	query := `
		UPDATE periods
		SET monthly_profit = $2, monthly_revenue = $3, overall_capital = $4, updated_at = $5, reset_at = $6
		WHERE period_id = $1;
	`
	tag, err := t.tx.Exec(ctx, query, m.PeriodID, m.MonthlyProfit, m.MonthlyRevenue, m.OverallCapital, m.UpdatedAt, m.ResetAt)
	if err != nil {
		return mapPgError(err, "failed to update period balances")
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "")
	}
	return nil
}

func (t *pgxLedgerTx) SaveLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (
			entry_id, entry_type, account, amount, description, notes, reference_id,
			created_by, created_at, effective_date, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := t.tx.Exec(ctx, query,
		m.EntryID, m.EntryType, m.Account, m.Amount, m.Description, m.Notes, m.ReferenceID,
		m.CreatedBy, m.CreatedAt, m.EffectiveDate, m.LastUpdatedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to insert ledger entry "+m.EntryID)
	}
	return nil
}

func (t *pgxLedgerTx) SaveOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	query := `
		INSERT INTO orders (
			order_id, name, quantity, cost, customer_price, taxes, profit, status,
			created_by, created_at, updated_at, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := t.tx.Exec(ctx, query,
		m.OrderID, m.Name, m.Quantity, m.Cost, m.CustomerPrice, m.Taxes, m.Profit, m.Status,
		m.CreatedBy, m.CreatedAt, m.UpdatedAt, m.CompletedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to insert order "+m.OrderID)
	}
	return nil
}

func (t *pgxLedgerTx) LockOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	row := t.tx.QueryRow(ctx, selectOrderQuery+` WHERE order_id = $1 FOR UPDATE;`, orderID)
	order, err := scanOrder(row)
	if err != nil {
		return nil, mapPgError(err, "failed to lock order "+orderID)
	}
	return order, nil
}

func (t *pgxLedgerTx) UpdateOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	query := `
		UPDATE orders
		SET name = $2, quantity = $3, cost = $4, customer_price = $5, taxes = $6, profit = $7,
		    status = $8, updated_at = $9, completed_at = $10
		WHERE order_id = $1;
	`
	tag, err := t.tx.Exec(ctx, query,
		m.OrderID, m.Name, m.Quantity, m.Cost, m.CustomerPrice, m.Taxes, m.Profit,
		m.Status, m.UpdatedAt, m.CompletedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to update order "+m.OrderID)
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "")
	}
	return nil
}
