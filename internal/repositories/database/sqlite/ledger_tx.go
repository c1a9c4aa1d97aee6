package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// sqliteLedgerTx implements portsrepo.LedgerTx. The immediate transaction already holds
// the database write lock, so plain selects are enough to "lock" rows.
type sqliteLedgerTx struct {
	tx *sql.Tx
}

var _ portsrepo.LedgerTx = (*sqliteLedgerTx)(nil)

func (t *sqliteLedgerTx) LockPeriod(ctx context.Context, key domain.PeriodKey, now time.Time) (*domain.Period, error) {
	prev := key.Prev()
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO periods (period_id, year, month, monthly_profit, monthly_revenue, overall_capital, created_at, updated_at)
		VALUES (?, ?, ?, '0', '0',
		        COALESCE((SELECT overall_capital FROM periods WHERE year = ? AND month = ?), '0'),
		        ?, ?)
		ON CONFLICT (year, month) DO NOTHING`,
		uuid.Must(uuid.NewV7()).String(), key.Year, key.Month, prev.Year, prev.Month, fmtTime(now), fmtTime(now),
	)
	if err != nil {
		return nil, mapSQLiteError(err, "create period "+key.String())
	}

	period, err := scanPeriod(t.tx.QueryRowContext(ctx, selectPeriodQuery+` WHERE year = ? AND month = ?`, key.Year, key.Month))
	if err != nil {
		return nil, mapSQLiteError(err, "lock period "+key.String())
	}
	return period, nil
}

func (t *sqliteLedgerTx) EnsurePeriod(ctx context.Context, key domain.PeriodKey, openingCapital decimal.Decimal, now time.Time) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO periods (period_id, year, month, monthly_profit, monthly_revenue, overall_capital, created_at, updated_at)
		VALUES (?, ?, ?, '0', '0', ?, ?, ?)
		ON CONFLICT (year, month) DO NOTHING`,
		uuid.Must(uuid.NewV7()).String(), key.Year, key.Month, openingCapital.String(), fmtTime(now), fmtTime(now),
	)
	if err != nil {
		return false, mapSQLiteError(err, "ensure period "+key.String())
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapSQLiteError(err, "ensure period "+key.String())
	}
	return n == 1, nil
}

func (t *sqliteLedgerTx) SavePeriodBalances(ctx context.Context, p domain.Period) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE periods
		SET monthly_profit = ?, monthly_revenue = ?, overall_capital = ?, updated_at = ?, reset_at = ?
		WHERE period_id = ?`,
		p.MonthlyProfit.String(), p.MonthlyRevenue.String(), p.OverallCapital.String(),
		fmtTime(p.UpdatedAt), fmtTimePtr(p.ResetAt), p.PeriodID,
	)
	if err != nil {
		return mapSQLiteError(err, "update period balances")
	}
	return requireOneRow(res, "update period balances")
}

func (t *sqliteLedgerTx) SaveLedgerEntry(ctx context.Context, e domain.LedgerEntry) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (
			entry_id, entry_type, account, amount, description, notes, reference_id,
			created_by, created_at, effective_date, last_updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EntryID, string(e.Type), string(e.Account), e.Amount.String(), e.Description, e.Notes,
		nullString(e.ReferenceID), string(e.CreatedBy), fmtTime(e.CreatedAt), fmtTime(e.EffectiveDate),
		fmtTime(e.LastUpdatedAt),
	)
	if err != nil {
		return mapSQLiteError(err, "insert ledger entry "+e.EntryID)
	}
	return nil
}

func (t *sqliteLedgerTx) SaveOrder(ctx context.Context, o domain.Order) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO orders (
			order_id, name, quantity, cost, customer_price, taxes, profit, status,
			created_by, created_at, updated_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.OrderID, o.Name, o.Quantity, o.Cost.String(), o.CustomerPrice.String(), o.Taxes.String(),
		o.Profit.String(), string(o.Status), string(o.CreatedBy), fmtTime(o.CreatedAt), fmtTime(o.UpdatedAt),
		fmtTimePtr(o.CompletedAt),
	)
	if err != nil {
		return mapSQLiteError(err, "insert order "+o.OrderID)
	}
	return nil
}

func (t *sqliteLedgerTx) LockOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(t.tx.QueryRowContext(ctx, selectOrderQuery+` WHERE order_id = ?`, orderID))
	if err != nil {
		return nil, mapSQLiteError(err, "lock order "+orderID)
	}
	return order, nil
}

func (t *sqliteLedgerTx) UpdateOrder(ctx context.Context, o domain.Order) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE orders
		SET name = ?, quantity = ?, cost = ?, customer_price = ?, taxes = ?, profit = ?,
		    status = ?, updated_at = ?, completed_at = ?
		WHERE order_id = ?`,
		o.Name, o.Quantity, o.Cost.String(), o.CustomerPrice.String(), o.Taxes.String(), o.Profit.String(),
		string(o.Status), fmtTime(o.UpdatedAt), fmtTimePtr(o.CompletedAt), o.OrderID,
	)
	if err != nil {
		return mapSQLiteError(err, "update order "+o.OrderID)
	}
	return requireOneRow(res, "update order "+o.OrderID)
}

func requireOneRow(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapSQLiteError(err, msg)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
