package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/utils/accounting"
)

type rolloverService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewRolloverService creates the admin rollover policy.
func NewRolloverService(clock domain.Clock, txManager portsrepo.TransactionManager) portssvc.RolloverSvc {
	return &rolloverService{
		BaseService: BaseService{Clock: clock},
		txManager:   txManager,
	}
}

var _ portssvc.RolloverSvc = (*rolloverService)(nil)

// Rollover folds the current period's profit (not its revenue) into its capital, stamps
// resetAt, and opens the next calendar period with that capital. The opening step is a no-op
// when the next period exists already. A second fold of the same period is refused.
func (s *rolloverService) Rollover(ctx context.Context, actor domain.Actor) (*domain.RolloverResult, error) {
	if err := s.AuthorizeAdmin(ctx, actor, "rollover"); err != nil {
		return nil, err
	}

	now := s.Now()
	key := domain.PeriodKeyOf(now)
	var result domain.RolloverResult
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		current, err := tx.LockPeriod(ctx, key, now)
		if err != nil {
			return err
		}
		if err := accounting.FoldProfit(current, now); err != nil {
			return err
		}
		if err := tx.SavePeriodBalances(ctx, *current); err != nil {
			return err
		}

		created, err := tx.EnsurePeriod(ctx, key.Next(), current.OverallCapital, now)
		if err != nil {
			return err
		}
		next, err := tx.LockPeriod(ctx, key.Next(), now)
		if err != nil {
			return err
		}

		result = domain.RolloverResult{Closed: *current, Opened: *next, Created: created}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyRolledOver) {
			s.LogWarn(ctx, "Rollover refused, period already folded",
				slog.String("period", key.String()),
				slog.String("actor", string(actor.Ref)))
		} else {
			s.LogError(ctx, err, "Failed to roll over period", slog.String("period", key.String()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Period rolled over",
		slog.String("period", key.String()),
		slog.String("folded_profit", result.Closed.MonthlyProfit.String()),
		slog.String("capital", result.Closed.OverallCapital.String()),
		slog.Bool("next_period_created", result.Created),
		slog.String("actor", string(actor.Ref)))
	return &result, nil
}
