package pgsql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/capital_ledger/internal/models"
	"github.com/SscSPs/capital_ledger/internal/utils/mapping"
	"github.com/SscSPs/capital_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerEntryColumns = `entry_id, entry_type, account, amount, description, notes, reference_id,
	       created_by, created_at, effective_date, last_updated_at`

type PgxLedgerEntryRepository struct {
	BaseRepository
}

func newPgxLedgerEntryRepository(pool *pgxpool.Pool) portsrepo.LedgerEntryRepositoryFacade {
	return &PgxLedgerEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*PgxLedgerEntryRepository)(nil)

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+ledgerEntryColumns+` FROM ledger_entries WHERE entry_id = $1;`, entryID)
	entry, err := scanLedgerEntry(row)
	if err != nil {
		return nil, mapPgError(err, "failed to find ledger entry "+entryID)
	}
	return entry, nil
}

// ListEntries retrieves entries by effective date descending, keyset paginated.
func (r *PgxLedgerEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether there is a next page.
	fetchLimit := limit + 1

	conditions, args := entryConditions(filter)
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmtValidation("invalid nextToken", err)
		}
		args = append(args, cursor.EffectiveDate, cursor.CreatedAt, cursor.ID)
		n := len(args)
		conditions = append(conditions,
			`(effective_date, created_at, entry_id) < ($`+strconv.Itoa(n-2)+`, $`+strconv.Itoa(n-1)+`, $`+strconv.Itoa(n)+`::uuid)`)
	}

	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY effective_date DESC, created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapPgError(err, "failed to list ledger entries")
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, nil, mapPgError(err, "failed to scan ledger entry row")
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapPgError(err, "error iterating ledger entry rows")
	}

	entries, next := pagination.Trim(entries, limit, entryCursor)
	return entries, next, nil
}

// SummarizeEntries aggregates matching entries in the database.
func (r *PgxLedgerEntryRepository) SummarizeEntries(ctx context.Context, filter domain.EntryFilter) (domain.EntrySummary, error) {
	conditions, args := entryConditions(filter)
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE entry_type = 'addition'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE entry_type = 'withdrawal'), 0),
		       COUNT(*)
		FROM ledger_entries`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}

	var summary domain.EntrySummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(&summary.TotalAdditions, &summary.TotalWithdrawals, &summary.Count)
	if err != nil {
		return domain.EntrySummary{}, mapPgError(err, "failed to summarize ledger entries")
	}
	summary.NetChange = summary.TotalAdditions.Sub(summary.TotalWithdrawals)
	return summary, nil
}

// UpdateEntryMetadata replaces description and notes when provided.
func (r *PgxLedgerEntryRepository) UpdateEntryMetadata(ctx context.Context, entryID string, description, notes *string, updatedAt time.Time) (*domain.LedgerEntry, error) {
	query := `
		UPDATE ledger_entries
		SET description = COALESCE($2, description), notes = COALESCE($3, notes), last_updated_at = $4
		WHERE entry_id = $1
		RETURNING ` + ledgerEntryColumns + `;`
	entry, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID, description, notes, updatedAt))
	if err != nil {
		return nil, mapPgError(err, "failed to update ledger entry "+entryID)
	}
	return entry, nil
}

// DeleteEntry removes the audit row. Period balances are not touched.
func (r *PgxLedgerEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return mapPgError(err, "failed to delete ledger entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func entryConditions(filter domain.EntryFilter) ([]string, []any) {
	var conditions []string
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, clause+` $`+strconv.Itoa(len(args)))
	}
	if filter.Type != nil {
		add(`entry_type =`, string(*filter.Type))
	}
	if filter.Account != nil {
		add(`account =`, string(*filter.Account))
	}
	if filter.From != nil {
		add(`effective_date >=`, *filter.From)
	}
	if filter.To != nil {
		add(`effective_date <`, *filter.To)
	}
	return conditions, args
}

func entryCursor(e domain.LedgerEntry) pagination.Cursor {
	return pagination.Cursor{EffectiveDate: e.EffectiveDate, CreatedAt: e.CreatedAt, ID: e.EntryID}
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryType,
		&m.Account,
		&m.Amount,
		&m.Description,
		&m.Notes,
		&m.ReferenceID,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.EffectiveDate,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}
