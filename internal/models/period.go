package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is the persisted row of the periods table.
type Period struct {
	PeriodID       string          `db:"period_id"`
	Year           int             `db:"year"`
	Month          int             `db:"month"`
	MonthlyProfit  decimal.Decimal `db:"monthly_profit"`
	MonthlyRevenue decimal.Decimal `db:"monthly_revenue"`
	OverallCapital decimal.Decimal `db:"overall_capital"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
	ResetAt        *time.Time      `db:"reset_at"`
}
