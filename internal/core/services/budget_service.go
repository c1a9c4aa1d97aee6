package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/SscSPs/capital_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

const defaultEntryListLimit = 20

// budgetService implements the BudgetSvcFacade interface
type budgetService struct {
	BaseService
	txManager portsrepo.TransactionManager
	entryRepo portsrepo.LedgerEntryRepositoryFacade
}

// NewBudgetService creates a new budget ledger service with the provided dependencies
func NewBudgetService(clock domain.Clock, txManager portsrepo.TransactionManager, entryRepo portsrepo.LedgerEntryRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{
		BaseService: BaseService{Clock: clock},
		txManager:   txManager,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// AddFunds increases the selected account of the current period and records an addition entry.
func (s *budgetService) AddFunds(ctx context.Context, actor domain.Actor, req dto.FundsRequest) (*domain.LedgerEntry, error) {
	return s.applyEntry(ctx, actor, domain.EntryAddition, req)
}

// WithdrawFunds decreases the selected account of the current period and records a withdrawal entry.
func (s *budgetService) WithdrawFunds(ctx context.Context, actor domain.Actor, req dto.FundsRequest) (*domain.LedgerEntry, error) {
	return s.applyEntry(ctx, actor, domain.EntryWithdrawal, req)
}

func (s *budgetService) applyEntry(ctx context.Context, actor domain.Actor, entryType domain.EntryType, req dto.FundsRequest) (*domain.LedgerEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !domain.WithinScale(req.Amount) {
		return nil, fmt.Errorf("%w: amount has more than %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}
	if !req.Account.IsValid() {
		return nil, fmt.Errorf("%w: unknown account %q", apperrors.ErrValidation, req.Account)
	}

	now := s.Now()
	effectiveDate := now
	if req.EffectiveDate != nil {
		effectiveDate = *req.EffectiveDate
	}
	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		Type:          entryType,
		Account:       req.Account,
		Amount:        req.Amount,
		Description:   req.Description,
		Notes:         req.Notes,
		ReferenceID:   req.ReferenceID,
		CreatedBy:     actor.Ref,
		CreatedAt:     now,
		EffectiveDate: effectiveDate,
		LastUpdatedAt: now,
	}

	key := domain.PeriodKeyOf(now)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		period, err := tx.LockPeriod(ctx, key, now)
		if err != nil {
			return err
		}
		if err := accounting.ApplyLedgerEntry(period, entry, now); err != nil {
			return err
		}
		if err := tx.SavePeriodBalances(ctx, *period); err != nil {
			return err
		}
		return tx.SaveLedgerEntry(ctx, entry)
	})
	if err != nil {
		var fundsErr *apperrors.InsufficientFundsError
		if errors.As(err, &fundsErr) {
			s.LogInfo(ctx, "Withdrawal rejected for insufficient balance",
				slog.String("account", fundsErr.Account),
				slog.String("available", fundsErr.Available.String()),
				slog.String("requested", fundsErr.Requested.String()))
		} else {
			s.LogError(ctx, err, "Failed to record ledger entry",
				slog.String("type", string(entryType)),
				slog.String("account", string(req.Account)))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("type", string(entry.Type)),
		slog.String("account", string(entry.Account)),
		slog.String("amount", entry.Amount.String()),
		slog.String("period", key.String()))
	return &entry, nil
}

func (s *budgetService) UpdateEntryMetadata(ctx context.Context, actor domain.Actor, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	if req.TouchesImmutableFields() {
		return nil, apperrors.ErrImmutableField
	}
	if _, err := uuid.Parse(entryID); err != nil {
		return nil, apperrors.ErrNotFound
	}

	entry, err := s.entryRepo.UpdateEntryMetadata(ctx, entryID, req.Description, req.Notes, s.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update ledger entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry metadata updated",
		slog.String("entry_id", entryID),
		slog.String("actor", string(actor.Ref)))
	return entry, nil
}

// DeleteEntry removes the audit row. The adjustment it recorded is left in the period balances.
func (s *budgetService) DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error {
	if err := s.AuthorizeAdmin(ctx, actor, "delete_ledger_entry"); err != nil {
		return err
	}
	if _, err := uuid.Parse(entryID); err != nil {
		return apperrors.ErrNotFound
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger entry", slog.String("entry_id", entryID))
		}
		return err
	}
	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete ledger entry", slog.String("entry_id", entryID))
		}
		return err
	}

	s.LogWarn(ctx, "Ledger entry deleted; its balance effect was not reversed",
		slog.String("entry_id", entryID),
		slog.String("type", string(entry.Type)),
		slog.String("account", string(entry.Account)),
		slog.String("amount", entry.Amount.String()),
		slog.String("actor", string(actor.Ref)))
	return nil
}

func (s *budgetService) GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.LedgerEntry, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *budgetService) ListEntries(ctx context.Context, actor domain.Actor, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	filter := domain.EntryFilter{
		Type:    params.Type,
		Account: params.Account,
		From:    s.dayStart(params.From),
		To:      inclusiveDayEnd(s.dayStart(params.To)),
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryListLimit
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list ledger entries")
		}
		return nil, err
	}

	s.LogDebug(ctx, "Ledger entries listed",
		slog.Int("count", len(entries)),
		slog.Bool("has_more", nextToken != nil))
	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *budgetService) Summarize(ctx context.Context, actor domain.Actor, params dto.LedgerSummaryParams) (*domain.EntrySummary, error) {
	filter := domain.EntryFilter{
		Type:    params.Type,
		Account: params.Account,
		From:    s.dayStart(params.From),
		To:      inclusiveDayEnd(s.dayStart(params.To)),
	}
	summary, err := s.entryRepo.SummarizeEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize ledger entries")
		return nil, err
	}
	return &summary, nil
}

// dayStart re-reads the calendar date of t as midnight in the ledger's location,
// whatever zone the caller parsed it in.
func (s *budgetService) dayStart(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.location())
	return &start
}

// inclusiveDayEnd turns a calendar date into the exclusive bound at the start of the next day.
func inclusiveDayEnd(to *time.Time) *time.Time {
	if to == nil {
		return nil
	}
	end := to.AddDate(0, 0, 1)
	return &end
}
