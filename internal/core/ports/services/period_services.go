package services

import (
	"context"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/dto"
)

// PeriodReaderSvc defines read operations on the period store.
type PeriodReaderSvc interface {
	// GetPeriod retrieves the period for year and month without creating it. Admin only.
	GetPeriod(ctx context.Context, actor domain.Actor, year, month int) (*domain.Period, error)

	// ListPeriods retrieves stored periods newest first. Admin only.
	ListPeriods(ctx context.Context, actor domain.Actor, params dto.ListPeriodsParams) ([]domain.Period, error)
}

// PeriodSvcFacade combines the period store operations.
type PeriodSvcFacade interface {
	PeriodReaderSvc

	// GetOrCreateCurrentPeriod returns the period of the clock's current month, creating it
	// with carried-forward capital when it does not exist yet.
	GetOrCreateCurrentPeriod(ctx context.Context) (*domain.Period, error)
}
