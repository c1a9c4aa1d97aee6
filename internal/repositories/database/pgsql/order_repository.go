package pgsql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/capital_ledger/internal/models"
	"github.com/SscSPs/capital_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectOrderQuery = `
	SELECT order_id, name, quantity, cost, customer_price, taxes, profit, status,
	       created_by, created_at, updated_at, completed_at
	FROM orders`

type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderReader {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderReader = (*PgxOrderRepository)(nil)

// FindOrderByID retrieves an order by its ID.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(r.Pool.QueryRow(ctx, selectOrderQuery+` WHERE order_id = $1;`, orderID))
	if err != nil {
		return nil, mapPgError(err, "failed to find order "+orderID)
	}
	return order, nil
}

// ListOrders retrieves orders newest first.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var conditions []string
	var args []any
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, `status = $`+strconv.Itoa(len(args)))
	}
	if filter.CreatedBy != nil {
		args = append(args, string(*filter.CreatedBy))
		conditions = append(conditions, `created_by = $`+strconv.Itoa(len(args)))
	}

	query := selectOrderQuery
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, order_id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list orders")
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan order row")
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating order rows")
	}
	return orders, nil
}

// SumCompletedOrders aggregates an actor's completed orders by completion time.
func (r *PgxOrderRepository) SumCompletedOrders(ctx context.Context, createdBy domain.ActorRef, from, to *time.Time) (domain.OrderTotals, error) {
	query := `
		SELECT COALESCE(SUM(profit), 0), COALESCE(SUM(customer_price * quantity), 0), COUNT(*)
		FROM orders
		WHERE created_by = $1 AND status = 'completed'`
	args := []any{string(createdBy)}
	if from != nil {
		args = append(args, *from)
		query += ` AND completed_at >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND completed_at < $` + strconv.Itoa(len(args))
	}

	var totals domain.OrderTotals
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&totals.Profit, &totals.Revenue, &totals.Count); err != nil {
		return domain.OrderTotals{}, mapPgError(err, "failed to sum completed orders")
	}
	return totals, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.Name,
		&m.Quantity,
		&m.Cost,
		&m.CustomerPrice,
		&m.Taxes,
		&m.Profit,
		&m.Status,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	order := mapping.ToDomainOrder(m)
	return &order, nil
}
