package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceService picks one of two balance definitions by access level. The two are
// computed independently and are not reconciled with each other.
type balanceService struct {
	period     portssvc.BalanceSource
	projection portssvc.BalanceSource
}

// NewBalanceService wires the period store view for admins and the order projection for members.
func NewBalanceService(clock domain.Clock, periodSvc portssvc.PeriodSvcFacade, periodRepo portsrepo.PeriodReader, orderRepo portsrepo.OrderReader) portssvc.BalanceSvc {
	return &balanceService{
		period: &periodBalanceSource{
			BaseService: BaseService{Clock: clock},
			periodSvc:   periodSvc,
			periodRepo:  periodRepo,
		},
		projection: &orderProjectionSource{
			BaseService: BaseService{Clock: clock},
			orderRepo:   orderRepo,
		},
	}
}

func (s *balanceService) For(actor domain.Actor) portssvc.BalanceSource {
	if actor.IsAdmin() {
		return s.period
	}
	return s.projection
}

// periodBalanceSource reports the system-wide balances held by the period store.
type periodBalanceSource struct {
	BaseService
	periodSvc  portssvc.PeriodSvcFacade
	periodRepo portsrepo.PeriodReader
}

var _ portssvc.BalanceSource = (*periodBalanceSource)(nil)

func (s *periodBalanceSource) Kind() domain.BalanceSourceKind {
	return domain.SourcePeriodStore
}

func (s *periodBalanceSource) CurrentBalances(ctx context.Context, actor domain.Actor) (*domain.Balances, error) {
	period, err := s.periodSvc.GetOrCreateCurrentPeriod(ctx)
	if err != nil {
		return nil, err
	}
	balances := domain.BalancesFromPeriod(*period)
	return &balances, nil
}

func (s *periodBalanceSource) Summary(ctx context.Context, actor domain.Actor) (*domain.FinancialSummary, error) {
	current, err := s.periodSvc.GetOrCreateCurrentPeriod(ctx)
	if err != nil {
		return nil, err
	}
	summary := &domain.FinancialSummary{
		Current:           domain.BalancesFromPeriod(*current),
		YearToDateProfit:  decimal.Zero,
		YearToDateRevenue: decimal.Zero,
	}

	prev, err := s.periodRepo.FindPeriod(ctx, current.Key().Prev())
	switch {
	case err == nil:
		b := domain.BalancesFromPeriod(*prev)
		summary.Previous = &b
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to load previous period", slog.String("period", current.Key().Prev().String()))
		return nil, err
	}

	year := current.Year
	periods, err := s.periodRepo.ListPeriods(ctx, domain.PeriodFilter{Year: &year, Limit: 12})
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods for year to date", slog.Int("year", year))
		return nil, err
	}
	for _, p := range periods {
		if p.Month > current.Month {
			continue
		}
		summary.YearToDateProfit = summary.YearToDateProfit.Add(p.MonthlyProfit)
		summary.YearToDateRevenue = summary.YearToDateRevenue.Add(p.MonthlyRevenue)
	}
	return summary, nil
}

// orderProjectionSource derives balances from the actor's own completed orders. Capital here
// is the lifetime sum of their profit and has nothing to do with the period store's capital.
type orderProjectionSource struct {
	BaseService
	orderRepo portsrepo.OrderReader
}

var _ portssvc.BalanceSource = (*orderProjectionSource)(nil)

func (s *orderProjectionSource) Kind() domain.BalanceSourceKind {
	return domain.SourceOrderProjection
}

func (s *orderProjectionSource) CurrentBalances(ctx context.Context, actor domain.Actor) (*domain.Balances, error) {
	return s.balancesFor(ctx, actor, s.CurrentPeriodKey())
}

func (s *orderProjectionSource) Summary(ctx context.Context, actor domain.Actor) (*domain.FinancialSummary, error) {
	key := s.CurrentPeriodKey()
	current, err := s.balancesFor(ctx, actor, key)
	if err != nil {
		return nil, err
	}
	previous, err := s.balancesFor(ctx, actor, key.Prev())
	if err != nil {
		return nil, err
	}

	loc := s.location()
	yearStart := time.Date(key.Year, time.January, 1, 0, 0, 0, 0, loc)
	yearEnd := yearStart.AddDate(1, 0, 0)
	ytd, err := s.orderRepo.SumCompletedOrders(ctx, actor.Ref, &yearStart, &yearEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum year to date orders", slog.String("actor", string(actor.Ref)))
		return nil, err
	}

	return &domain.FinancialSummary{
		Current:           *current,
		Previous:          previous,
		YearToDateProfit:  ytd.Profit,
		YearToDateRevenue: ytd.Revenue,
	}, nil
}

// balancesFor projects the month key: profit and revenue of orders completed in that month.
// For the current month capital covers every completed order; for earlier months it stops
// at the month's end.
func (s *orderProjectionSource) balancesFor(ctx context.Context, actor domain.Actor, key domain.PeriodKey) (*domain.Balances, error) {
	loc := s.location()
	from, to := key.Start(loc), key.End(loc)

	month, err := s.orderRepo.SumCompletedOrders(ctx, actor.Ref, &from, &to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum monthly orders",
			slog.String("actor", string(actor.Ref)),
			slog.String("period", key.String()))
		return nil, err
	}
	var upTo *time.Time
	if key != s.CurrentPeriodKey() {
		upTo = &to
	}
	lifetime, err := s.orderRepo.SumCompletedOrders(ctx, actor.Ref, nil, upTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum lifetime orders", slog.String("actor", string(actor.Ref)))
		return nil, err
	}

	return &domain.Balances{
		Year:           key.Year,
		Month:          key.Month,
		MonthlyProfit:  month.Profit,
		MonthlyRevenue: month.Revenue,
		OverallCapital: lifetime.Profit,
		Source:         domain.SourceOrderProjection,
	}, nil
}
