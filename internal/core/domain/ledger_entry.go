package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the direction of a manual adjustment. Amounts are always positive.
type EntryType string

const (
	EntryAddition   EntryType = "addition"
	EntryWithdrawal EntryType = "withdrawal"
)

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	return t == EntryAddition || t == EntryWithdrawal
}

// BudgetAccount names the period balance a ledger entry adjusts.
type BudgetAccount string

const (
	AccountMonthlyProfit  BudgetAccount = "monthly_profit"
	AccountOverallCapital BudgetAccount = "overall_capital"
)

// IsValid reports whether a is a known budget account.
func (a BudgetAccount) IsValid() bool {
	return a == AccountMonthlyProfit || a == AccountOverallCapital
}

// LedgerEntry is the audit record of one manual balance adjustment.
// Deleting it does not reverse the adjustment.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	Type          EntryType       `json:"type"`
	Account       BudgetAccount   `json:"account"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	ReferenceID   *string         `json:"referenceID,omitempty"`
	CreatedBy     ActorRef        `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// SignedAmount is the amount with the direction of the entry applied.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Type == EntryWithdrawal {
		return e.Amount.Neg()
	}
	return e.Amount
}

// EntryFilter narrows listing and summarizing of ledger entries. From is inclusive, To exclusive.
type EntryFilter struct {
	Type    *EntryType
	Account *BudgetAccount
	From    *time.Time
	To      *time.Time
}

// EntrySummary aggregates ledger entries matching a filter.
type EntrySummary struct {
	TotalAdditions   decimal.Decimal `json:"totalAdditions"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	NetChange        decimal.Decimal `json:"netChange"`
	Count            int             `json:"count"`
}

// Add folds one entry into the summary.
func (s *EntrySummary) Add(e LedgerEntry) {
	if e.Type == EntryAddition {
		s.TotalAdditions = s.TotalAdditions.Add(e.Amount)
	} else {
		s.TotalWithdrawals = s.TotalWithdrawals.Add(e.Amount)
	}
	s.NetChange = s.TotalAdditions.Sub(s.TotalWithdrawals)
	s.Count++
}
