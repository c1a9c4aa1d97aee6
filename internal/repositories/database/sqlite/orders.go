package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

const selectOrderQuery = `
	SELECT order_id, name, quantity, cost, customer_price, taxes, profit, status,
	       created_by, created_at, updated_at, completed_at
	FROM orders`

func (s *Store) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(s.reader.QueryRowContext(ctx, selectOrderQuery+` WHERE order_id = ?`, orderID))
	if err != nil {
		return nil, mapSQLiteError(err, "find order "+orderID)
	}
	return order, nil
}

func (s *Store) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var conditions []string
	var args []any
	if filter.Status != nil {
		conditions = append(conditions, `status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.CreatedBy != nil {
		conditions = append(conditions, `created_by = ?`)
		args = append(args, string(*filter.CreatedBy))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	query := selectOrderQuery + where(conditions) + ` ORDER BY created_at DESC, order_id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLiteError(err, "list orders")
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, mapSQLiteError(err, "scan order")
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err, "iterate orders")
	}
	return orders, nil
}

// SumCompletedOrders folds the matching orders in Go to keep decimal precision.
func (s *Store) SumCompletedOrders(ctx context.Context, createdBy domain.ActorRef, from, to *time.Time) (domain.OrderTotals, error) {
	conditions := []string{`created_by = ?`, `status = 'completed'`}
	args := []any{string(createdBy)}
	if from != nil {
		conditions = append(conditions, `completed_at >= ?`)
		args = append(args, fmtTime(*from))
	}
	if to != nil {
		conditions = append(conditions, `completed_at < ?`)
		args = append(args, fmtTime(*to))
	}

	rows, err := s.reader.QueryContext(ctx, `SELECT quantity, customer_price, profit FROM orders`+where(conditions), args...)
	if err != nil {
		return domain.OrderTotals{}, mapSQLiteError(err, "sum completed orders")
	}
	defer rows.Close()

	totals := domain.OrderTotals{Profit: decimal.Zero, Revenue: decimal.Zero}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.Quantity, &o.CustomerPrice, &o.Profit); err != nil {
			return domain.OrderTotals{}, mapSQLiteError(err, "scan completed order")
		}
		totals.Add(o)
	}
	if err := rows.Err(); err != nil {
		return domain.OrderTotals{}, mapSQLiteError(err, "iterate completed orders")
	}
	return totals, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var createdBy, createdAt, updatedAt string
	var completedAt sql.NullString
	if err := row.Scan(
		&o.OrderID, &o.Name, &o.Quantity, &o.Cost, &o.CustomerPrice, &o.Taxes, &o.Profit, &o.Status,
		&createdBy, &createdAt, &updatedAt, &completedAt,
	); err != nil {
		return nil, err
	}
	o.CreatedBy = domain.ActorRef(createdBy)

	var err error
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if o.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
