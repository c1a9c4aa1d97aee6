package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
)

// LedgerEntryReader defines read operations on ledger entries.
type LedgerEntryReader interface {
	// FindEntryByID retrieves a ledger entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves entries ordered by effective date descending using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SummarizeEntries aggregates every entry matching filter.
	SummarizeEntries(ctx context.Context, filter domain.EntryFilter) (domain.EntrySummary, error)
}

// LedgerEntryWriter defines the writes that do not touch balances.
type LedgerEntryWriter interface {
	// UpdateEntryMetadata replaces description and notes when non-nil and returns the updated entry.
	UpdateEntryMetadata(ctx context.Context, entryID string, description, notes *string, updatedAt time.Time) (*domain.LedgerEntry, error)

	// DeleteEntry removes the audit row only.
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerEntryRepositoryFacade combines all ledger entry repository interfaces.
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
