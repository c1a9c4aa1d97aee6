package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
)

const defaultPeriodListLimit = 24

// periodService implements the PeriodSvcFacade interface
type periodService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	periodRepo portsrepo.PeriodReader
}

// NewPeriodService creates a new period service with the provided dependencies
func NewPeriodService(clock domain.Clock, txManager portsrepo.TransactionManager, periodRepo portsrepo.PeriodReader) portssvc.PeriodSvcFacade {
	return &periodService{
		BaseService: BaseService{Clock: clock},
		txManager:   txManager,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// GetOrCreateCurrentPeriod returns the period of the current month, creating it when absent.
func (s *periodService) GetOrCreateCurrentPeriod(ctx context.Context) (*domain.Period, error) {
	key := s.CurrentPeriodKey()
	var period *domain.Period
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		p, err := tx.LockPeriod(ctx, key, s.Now())
		if err != nil {
			return err
		}
		period = p
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to get or create current period",
			slog.String("period", key.String()))
		return nil, err
	}

	s.LogDebug(ctx, "Current period resolved",
		slog.String("period", key.String()),
		slog.String("period_id", period.PeriodID))
	return period, nil
}

// GetPeriod retrieves a period without creating it.
func (s *periodService) GetPeriod(ctx context.Context, actor domain.Actor, year, month int) (*domain.Period, error) {
	if err := s.AuthorizeAdmin(ctx, actor, "get_period"); err != nil {
		return nil, err
	}
	key := domain.PeriodKey{Year: year, Month: month}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	period, err := s.periodRepo.FindPeriod(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period", slog.String("period", key.String()))
		}
		return nil, err
	}
	return period, nil
}

// ListPeriods retrieves stored periods newest first.
func (s *periodService) ListPeriods(ctx context.Context, actor domain.Actor, params dto.ListPeriodsParams) ([]domain.Period, error) {
	if err := s.AuthorizeAdmin(ctx, actor, "list_periods"); err != nil {
		return nil, err
	}
	filter := domain.PeriodFilter{Year: params.Year, Limit: params.Limit, Offset: params.Offset}
	if filter.Limit <= 0 {
		filter.Limit = defaultPeriodListLimit
	}

	periods, err := s.periodRepo.ListPeriods(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods")
		return nil, err
	}
	if periods == nil {
		return []domain.Period{}, nil
	}

	s.LogDebug(ctx, "Periods listed successfully", slog.Int("count", len(periods)))
	return periods, nil
}
