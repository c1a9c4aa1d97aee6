package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodKey identifies one calendar month.
type PeriodKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PeriodKeyOf returns the key of the calendar month t falls in, in t's location.
func PeriodKeyOf(t time.Time) PeriodKey {
	return PeriodKey{Year: t.Year(), Month: int(t.Month())}
}

// Validate checks that the month is within 1..12.
func (k PeriodKey) Validate() error {
	if k.Month < 1 || k.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", k.Month)
	}
	if k.Year < 1 {
		return fmt.Errorf("year must be positive, got %d", k.Year)
	}
	return nil
}

// Prev returns the previous calendar month, wrapping January to December of the prior year.
func (k PeriodKey) Prev() PeriodKey {
	if k.Month == 1 {
		return PeriodKey{Year: k.Year - 1, Month: 12}
	}
	return PeriodKey{Year: k.Year, Month: k.Month - 1}
}

// Next returns the following calendar month, wrapping December to January of the next year.
func (k PeriodKey) Next() PeriodKey {
	if k.Month == 12 {
		return PeriodKey{Year: k.Year + 1, Month: 1}
	}
	return PeriodKey{Year: k.Year, Month: k.Month + 1}
}

// Start is the first instant of the month in loc.
func (k PeriodKey) Start(loc *time.Location) time.Time {
	return time.Date(k.Year, time.Month(k.Month), 1, 0, 0, 0, 0, loc)
}

// End is the first instant of the following month in loc.
func (k PeriodKey) End(loc *time.Location) time.Time {
	return k.Next().Start(loc)
}

func (k PeriodKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

// Period holds one calendar month's balances. Profit and revenue accrue within the
// month while capital carries forward from the previous one.
type Period struct {
	PeriodID       string          `json:"periodID"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	MonthlyProfit  decimal.Decimal `json:"monthlyProfit"`
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
	OverallCapital decimal.Decimal `json:"overallCapital"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	ResetAt        *time.Time      `json:"resetAt,omitempty"`
}

// Key returns the period's (year, month) key.
func (p Period) Key() PeriodKey {
	return PeriodKey{Year: p.Year, Month: p.Month}
}

// IsRolledOver reports whether the profit of this period has been folded into capital.
func (p Period) IsRolledOver() bool {
	return p.ResetAt != nil
}

// Balance returns the current balance of the given budget account.
func (p Period) Balance(account BudgetAccount) decimal.Decimal {
	if account == AccountMonthlyProfit {
		return p.MonthlyProfit
	}
	return p.OverallCapital
}

// Adjust adds delta (which may be negative) to the given budget account.
func (p *Period) Adjust(account BudgetAccount, delta decimal.Decimal) {
	if account == AccountMonthlyProfit {
		p.MonthlyProfit = p.MonthlyProfit.Add(delta)
		return
	}
	p.OverallCapital = p.OverallCapital.Add(delta)
}

// PeriodFilter narrows ListPeriods.
type PeriodFilter struct {
	Year   *int
	Limit  int
	Offset int
}

// RolloverResult reports both sides of a rollover: the period whose profit was folded
// and the following period that now exists.
type RolloverResult struct {
	Closed Period `json:"closed"`
	Opened Period `json:"opened"`
	// Created is false when the next period already existed before the rollover.
	Created bool `json:"created"`
}

// CarryForwardWarning describes the capital movements the rollover will not pick up.
func (r RolloverResult) CarryForwardWarning() string {
	if !r.Created {
		return fmt.Sprintf("%s already existed, its capital was not updated from %s", r.Opened.Key(), r.Closed.Key())
	}
	return fmt.Sprintf("capital changes recorded in %s after this rollover will not carry into %s", r.Closed.Key(), r.Opened.Key())
}
