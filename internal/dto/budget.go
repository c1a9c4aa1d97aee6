package dto

import (
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundsRequest defines the data needed to add funds to or withdraw funds from a budget account.
// Amount positivity is checked by the service so it surfaces as an invalid amount.
type FundsRequest struct {
	Account       domain.BudgetAccount `json:"account" binding:"required,oneof=monthly_profit overall_capital"`
	Amount        decimal.Decimal      `json:"amount"`
	Description   string               `json:"description" binding:"max=500"`
	Notes         string               `json:"notes" binding:"max=2000"`
	ReferenceID   *string              `json:"referenceID" binding:"omitempty,max=255"`
	EffectiveDate *time.Time           `json:"effectiveDate"`
}

// UpdateLedgerEntryRequest defines the data allowed for updating a ledger entry.
// Amount, Type and Account are decoded only so that attempts to change them can be rejected.
type UpdateLedgerEntryRequest struct {
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Notes       *string          `json:"notes" binding:"omitempty,max=2000"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Account     *string          `json:"account,omitempty"`
}

// TouchesImmutableFields reports whether the request tries to change amount, type or account.
func (r UpdateLedgerEntryRequest) TouchesImmutableFields() bool {
	return r.Amount != nil || r.Type != nil || r.Account != nil
}

// ListLedgerEntriesParams defines the query parameters for listing ledger entries.
// From and To are calendar dates in the ledger's time zone.
type ListLedgerEntriesParams struct {
	Type      *domain.EntryType     `form:"type" binding:"omitempty,oneof=addition withdrawal"`
	Account   *domain.BudgetAccount `form:"account" binding:"omitempty,oneof=monthly_profit overall_capital"`
	From      *time.Time            `form:"from" time_format:"2006-01-02"`
	To        *time.Time            `form:"to" time_format:"2006-01-02"`
	Limit     int                   `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string               `form:"nextToken"`
}

// LedgerSummaryParams defines the query parameters for summarizing ledger entries.
type LedgerSummaryParams struct {
	Type    *domain.EntryType     `form:"type" binding:"omitempty,oneof=addition withdrawal"`
	Account *domain.BudgetAccount `form:"account" binding:"omitempty,oneof=monthly_profit overall_capital"`
	From    *time.Time            `form:"from" time_format:"2006-01-02"`
	To      *time.Time            `form:"to" time_format:"2006-01-02"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID       string               `json:"entryID"`
	Type          domain.EntryType     `json:"type"`
	Account       domain.BudgetAccount `json:"account"`
	Amount        decimal.Decimal      `json:"amount"`
	Description   string               `json:"description"`
	Notes         string               `json:"notes"`
	ReferenceID   *string              `json:"referenceID,omitempty"`
	CreatedBy     string               `json:"createdBy"`
	CreatedAt     time.Time            `json:"createdAt"`
	EffectiveDate time.Time            `json:"effectiveDate"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ListLedgerEntriesResponse wraps a page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// LedgerSummaryResponse defines the data returned by the summary endpoint.
type LedgerSummaryResponse struct {
	TotalAdditions   decimal.Decimal `json:"totalAdditions"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	NetChange        decimal.Decimal `json:"netChange"`
	Count            int             `json:"count"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		Type:          e.Type,
		Account:       e.Account,
		Amount:        e.Amount,
		Description:   e.Description,
		Notes:         e.Notes,
		ReferenceID:   e.ReferenceID,
		CreatedBy:     string(e.CreatedBy),
		CreatedAt:     e.CreatedAt,
		EffectiveDate: e.EffectiveDate,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry to []LedgerEntryResponse.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}

// ToLedgerSummaryResponse converts a domain.EntrySummary to LedgerSummaryResponse DTO.
func ToLedgerSummaryResponse(s *domain.EntrySummary) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		TotalAdditions:   s.TotalAdditions,
		TotalWithdrawals: s.TotalWithdrawals,
		NetChange:        s.NetChange,
		Count:            s.Count,
	}
}
