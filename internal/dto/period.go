package dto

import (
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListPeriodsParams defines the query parameters for listing periods.
type ListPeriodsParams struct {
	Year   *int `form:"year" binding:"omitempty,min=1"`
	Limit  int  `form:"limit" binding:"omitempty,min=1,max=120"`
	Offset int  `form:"offset" binding:"omitempty,min=0"`
}

// PeriodResponse defines the data returned for a period.
type PeriodResponse struct {
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

// ListPeriodsResponse wraps a list of periods.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// RolloverResponse defines the data returned by a rollover.
type RolloverResponse struct {
	Closed            PeriodResponse `json:"closed"`
	Opened            PeriodResponse `json:"opened"`
	NextPeriodCreated bool           `json:"nextPeriodCreated"`
}

// ToPeriodResponse converts a domain.Period to PeriodResponse DTO.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:       p.PeriodID,
		Year:           p.Year,
		Month:          p.Month,
		MonthlyProfit:  p.MonthlyProfit,
		MonthlyRevenue: p.MonthlyRevenue,
		OverallCapital: p.OverallCapital,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		ResetAt:        p.ResetAt,
	}
}

// ToListPeriodsResponse converts a slice of domain.Period to ListPeriodsResponse.
func ToListPeriodsResponse(periods []domain.Period) ListPeriodsResponse {
	list := make([]PeriodResponse, len(periods))
	for i := range periods {
		list[i] = ToPeriodResponse(&periods[i])
	}
	return ListPeriodsResponse{Periods: list}
}

// ToRolloverResponse converts a domain.RolloverResult to RolloverResponse DTO.
func ToRolloverResponse(r *domain.RolloverResult) RolloverResponse {
	return RolloverResponse{
		Closed:            ToPeriodResponse(&r.Closed),
		Opened:            ToPeriodResponse(&r.Opened),
		NextPeriodCreated: r.Created,
	}
}
