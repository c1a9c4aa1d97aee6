package repositories

import (
	"context"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
)

// PeriodReader defines lock-free read operations on periods.
type PeriodReader interface {
	// FindPeriod retrieves the period for key without creating it.
	FindPeriod(ctx context.Context, key domain.PeriodKey) (*domain.Period, error)

	// ListPeriods retrieves periods newest first.
	ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.Period, error)
}
