package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/capital_ledger/internal/models"
	"github.com/SscSPs/capital_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectPeriodQuery = `
	SELECT period_id, year, month, monthly_profit, monthly_revenue, overall_capital,
	       created_at, updated_at, reset_at
	FROM periods`

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodReader {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodReader = (*PgxPeriodRepository)(nil)

// FindPeriod retrieves a period by (year, month).
func (r *PgxPeriodRepository) FindPeriod(ctx context.Context, key domain.PeriodKey) (*domain.Period, error) {
	row := r.Pool.QueryRow(ctx, selectPeriodQuery+` WHERE year = $1 AND month = $2;`, key.Year, key.Month)
	period, err := scanPeriod(row)
	if err != nil {
		return nil, mapPgError(err, "failed to find period "+key.String())
	}
	return period, nil
}

// ListPeriods retrieves periods newest first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.Period, error) {
	query := selectPeriodQuery
	args := []any{}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		query += ` WHERE year = $1`
	}
	query += ` ORDER BY year DESC, month DESC`
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
		return nil, mapPgError(err, "failed to list periods")
	}
	defer rows.Close()

	periods := []domain.Period{}
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan period row")
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating period rows")
	}
	return periods, nil
}

func scanPeriod(row pgx.Row) (*domain.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID,
		&m.Year,
		&m.Month,
		&m.MonthlyProfit,
		&m.MonthlyRevenue,
		&m.OverallCapital,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.ResetAt,
	)
	if err != nil {
		return nil, err
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}
