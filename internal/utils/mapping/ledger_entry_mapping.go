package mapping

import (
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		EntryType:     string(d.Type),
		Account:       string(d.Account),
		Amount:        d.Amount,
		Description:   d.Description,
		Notes:         d.Notes,
		ReferenceID:   d.ReferenceID,
		CreatedBy:     string(d.CreatedBy),
		CreatedAt:     d.CreatedAt,
		EffectiveDate: d.EffectiveDate,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		Type:          domain.EntryType(m.EntryType),
		Account:       domain.BudgetAccount(m.Account),
		Amount:        m.Amount,
		Description:   m.Description,
		Notes:         m.Notes,
		ReferenceID:   m.ReferenceID,
		CreatedBy:     domain.ActorRef(m.CreatedBy),
		CreatedAt:     m.CreatedAt,
		EffectiveDate: m.EffectiveDate,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
