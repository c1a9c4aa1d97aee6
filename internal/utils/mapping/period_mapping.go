package mapping

import (
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/models"
)

// ToModelPeriod converts a domain Period to a model Period
func ToModelPeriod(d domain.Period) models.Period {
	return models.Period{
		PeriodID:       d.PeriodID,
		Year:           d.Year,
		Month:          d.Month,
		MonthlyProfit:  d.MonthlyProfit,
		MonthlyRevenue: d.MonthlyRevenue,
		OverallCapital: d.OverallCapital,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		ResetAt:        d.ResetAt,
	}
}

// ToDomainPeriod converts a model Period to a domain Period
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:       m.PeriodID,
		Year:           m.Year,
		Month:          m.Month,
		MonthlyProfit:  m.MonthlyProfit,
		MonthlyRevenue: m.MonthlyRevenue,
		OverallCapital: m.OverallCapital,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		ResetAt:        m.ResetAt,
	}
}
