package sqlite

import (
	"context"
	"database/sql"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
)

const selectPeriodQuery = `
	SELECT period_id, year, month, monthly_profit, monthly_revenue, overall_capital,
	       created_at, updated_at, reset_at
	FROM periods`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) FindPeriod(ctx context.Context, key domain.PeriodKey) (*domain.Period, error) {
	period, err := scanPeriod(s.reader.QueryRowContext(ctx, selectPeriodQuery+` WHERE year = ? AND month = ?`, key.Year, key.Month))
	if err != nil {
		return nil, mapSQLiteError(err, "find period "+key.String())
	}
	return period, nil
}

func (s *Store) ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.Period, error) {
	query := selectPeriodQuery
	var args []any
	if filter.Year != nil {
		query += ` WHERE year = ?`
		args = append(args, *filter.Year)
	}
	query += ` ORDER BY year DESC, month DESC`
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLiteError(err, "list periods")
	}
	defer rows.Close()

	periods := []domain.Period{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, mapSQLiteError(err, "scan period")
		}
		periods = append(periods, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err, "iterate periods")
	}
	return periods, nil
}

func scanPeriod(row rowScanner) (*domain.Period, error) {
	var p domain.Period
	var createdAt, updatedAt string
	var resetAt sql.NullString
	if err := row.Scan(
		&p.PeriodID, &p.Year, &p.Month,
		&p.MonthlyProfit, &p.MonthlyRevenue, &p.OverallCapital,
		&createdAt, &updatedAt, &resetAt,
	); err != nil {
		return nil, err
	}

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if p.ResetAt, err = parseNullTime(resetAt); err != nil {
		return nil, err
	}
	return &p, nil
}
