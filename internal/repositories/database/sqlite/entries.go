package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/utils/pagination"
)

const selectEntryQuery = `
	SELECT entry_id, entry_type, account, amount, description, notes, reference_id,
	       created_by, created_at, effective_date, last_updated_at
	FROM ledger_entries`

func (s *Store) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := scanEntry(s.reader.QueryRowContext(ctx, selectEntryQuery+` WHERE entry_id = ?`, entryID))
	if err != nil {
		return nil, mapSQLiteError(err, "find ledger entry "+entryID)
	}
	return entry, nil
}

func (s *Store) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	conditions, args := entryConditions(filter)
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		conditions = append(conditions, `(effective_date, created_at, entry_id) < (?, ?, ?)`)
		args = append(args, fmtTime(cursor.EffectiveDate), fmtTime(cursor.CreatedAt), cursor.ID)
	}

	query := selectEntryQuery + where(conditions) + ` ORDER BY effective_date DESC, created_at DESC, entry_id DESC LIMIT ?`
	args = append(args, limit+1)

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, mapSQLiteError(err, "list ledger entries")
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0, limit+1)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, nil, mapSQLiteError(err, "scan ledger entry")
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapSQLiteError(err, "iterate ledger entries")
	}

	entries, next := pagination.Trim(entries, limit, func(e domain.LedgerEntry) pagination.Cursor {
		return pagination.Cursor{EffectiveDate: e.EffectiveDate, CreatedAt: e.CreatedAt, ID: e.EntryID}
	})
	return entries, next, nil
}

// SummarizeEntries folds matching rows in Go; SQLite would sum the text amounts as floats.
func (s *Store) SummarizeEntries(ctx context.Context, filter domain.EntryFilter) (domain.EntrySummary, error) {
	conditions, args := entryConditions(filter)
	rows, err := s.reader.QueryContext(ctx, `SELECT entry_type, amount FROM ledger_entries`+where(conditions), args...)
	if err != nil {
		return domain.EntrySummary{}, mapSQLiteError(err, "summarize ledger entries")
	}
	defer rows.Close()

	var summary domain.EntrySummary
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.Type, &e.Amount); err != nil {
			return domain.EntrySummary{}, mapSQLiteError(err, "scan ledger entry amount")
		}
		summary.Add(e)
	}
	if err := rows.Err(); err != nil {
		return domain.EntrySummary{}, mapSQLiteError(err, "iterate ledger entry amounts")
	}
	return summary, nil
}

func (s *Store) UpdateEntryMetadata(ctx context.Context, entryID string, description, notes *string, updatedAt time.Time) (*domain.LedgerEntry, error) {
	res, err := s.writer.ExecContext(ctx, `
		UPDATE ledger_entries
		SET description = COALESCE(?, description), notes = COALESCE(?, notes), last_updated_at = ?
		WHERE entry_id = ?`,
		nullString(description), nullString(notes), fmtTime(updatedAt), entryID,
	)
	if err != nil {
		return nil, mapSQLiteError(err, "update ledger entry "+entryID)
	}
	if err := requireOneRow(res, "update ledger entry "+entryID); err != nil {
		return nil, err
	}
	entry, err := scanEntry(s.writer.QueryRowContext(ctx, selectEntryQuery+` WHERE entry_id = ?`, entryID))
	if err != nil {
		return nil, mapSQLiteError(err, "reload ledger entry "+entryID)
	}
	return entry, nil
}

func (s *Store) DeleteEntry(ctx context.Context, entryID string) error {
	res, err := s.writer.ExecContext(ctx, `DELETE FROM ledger_entries WHERE entry_id = ?`, entryID)
	if err != nil {
		return mapSQLiteError(err, "delete ledger entry "+entryID)
	}
	return requireOneRow(res, "delete ledger entry "+entryID)
}

func entryConditions(filter domain.EntryFilter) ([]string, []any) {
	var conditions []string
	var args []any
	if filter.Type != nil {
		conditions = append(conditions, `entry_type = ?`)
		args = append(args, string(*filter.Type))
	}
	if filter.Account != nil {
		conditions = append(conditions, `account = ?`)
		args = append(args, string(*filter.Account))
	}
	if filter.From != nil {
		conditions = append(conditions, `effective_date >= ?`)
		args = append(args, fmtTime(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, `effective_date < ?`)
		args = append(args, fmtTime(*filter.To))
	}
	return conditions, args
}

func where(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return ` WHERE ` + strings.Join(conditions, " AND ")
}

func scanEntry(row rowScanner) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var referenceID sql.NullString
	var createdBy, createdAt, effectiveDate, lastUpdatedAt string
	if err := row.Scan(
		&e.EntryID, &e.Type, &e.Account, &e.Amount, &e.Description, &e.Notes, &referenceID,
		&createdBy, &createdAt, &effectiveDate, &lastUpdatedAt,
	); err != nil {
		return nil, err
	}
	e.ReferenceID = stringPtr(referenceID)
	e.CreatedBy = domain.ActorRef(createdBy)

	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.EffectiveDate, err = parseTime(effectiveDate); err != nil {
		return nil, err
	}
	if e.LastUpdatedAt, err = parseTime(lastUpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
