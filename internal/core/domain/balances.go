package domain

import "github.com/shopspring/decimal"

// BalanceSourceKind names the computation that produced a Balances value.
type BalanceSourceKind string

const (
	SourcePeriodStore     BalanceSourceKind = "period_store"
	SourceOrderProjection BalanceSourceKind = "order_projection"
)

// Balances is the current view of profit, revenue and capital for one month.
type Balances struct {
	Year           int               `json:"year"`
	Month          int               `json:"month"`
	MonthlyProfit  decimal.Decimal   `json:"monthlyProfit"`
	MonthlyRevenue decimal.Decimal   `json:"monthlyRevenue"`
	OverallCapital decimal.Decimal   `json:"overallCapital"`
	Source         BalanceSourceKind `json:"source"`
}

// BalancesFromPeriod builds the period store view of a period.
func BalancesFromPeriod(p Period) Balances {
	return Balances{
		Year:           p.Year,
		Month:          p.Month,
		MonthlyProfit:  p.MonthlyProfit,
		MonthlyRevenue: p.MonthlyRevenue,
		OverallCapital: p.OverallCapital,
		Source:         SourcePeriodStore,
	}
}

// FinancialSummary combines current balances with the previous month and year-to-date totals.
type FinancialSummary struct {
	Current           Balances        `json:"current"`
	Previous          *Balances       `json:"previous,omitempty"`
	YearToDateProfit  decimal.Decimal `json:"yearToDateProfit"`
	YearToDateRevenue decimal.Decimal `json:"yearToDateRevenue"`
}
