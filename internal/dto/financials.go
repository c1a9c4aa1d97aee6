package dto

import (
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalancesResponse defines the data returned for current balances.
type BalancesResponse struct {
	Year           int                      `json:"year"`
	Month          int                      `json:"month"`
	MonthlyProfit  decimal.Decimal          `json:"monthlyProfit"`
	MonthlyRevenue decimal.Decimal          `json:"monthlyRevenue"`
	OverallCapital decimal.Decimal          `json:"overallCapital"`
	Source         domain.BalanceSourceKind `json:"source"`
}

// FinancialSummaryResponse defines the data returned by the financial summary endpoint.
type FinancialSummaryResponse struct {
	Current           BalancesResponse  `json:"current"`
	Previous          *BalancesResponse `json:"previous,omitempty"`
	YearToDateProfit  decimal.Decimal   `json:"yearToDateProfit"`
	YearToDateRevenue decimal.Decimal   `json:"yearToDateRevenue"`
}

// ToBalancesResponse converts domain.Balances to BalancesResponse DTO.
func ToBalancesResponse(b *domain.Balances) BalancesResponse {
	return BalancesResponse{
		Year:           b.Year,
		Month:          b.Month,
		MonthlyProfit:  b.MonthlyProfit,
		MonthlyRevenue: b.MonthlyRevenue,
		OverallCapital: b.OverallCapital,
		Source:         b.Source,
	}
}

// ToFinancialSummaryResponse converts domain.FinancialSummary to FinancialSummaryResponse DTO.
func ToFinancialSummaryResponse(s *domain.FinancialSummary) FinancialSummaryResponse {
	resp := FinancialSummaryResponse{
		Current:           ToBalancesResponse(&s.Current),
		YearToDateProfit:  s.YearToDateProfit,
		YearToDateRevenue: s.YearToDateRevenue,
	}
	if s.Previous != nil {
		prev := ToBalancesResponse(s.Previous)
		resp.Previous = &prev
	}
	return resp
}
