package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the persisted row of the ledger_entries table.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	EntryType     string          `db:"entry_type"`
	Account       string          `db:"account"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	Notes         string          `db:"notes"`
	ReferenceID   *string         `db:"reference_id"`
	CreatedBy     string          `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
	EffectiveDate time.Time       `db:"effective_date"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}
