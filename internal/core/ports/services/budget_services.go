package services

import (
	"context"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/dto"
)

// BudgetWriterSvc defines manual balance adjustments and maintenance of their audit trail.
type BudgetWriterSvc interface {
	AddFunds(ctx context.Context, actor domain.Actor, req dto.FundsRequest) (*domain.LedgerEntry, error)
	WithdrawFunds(ctx context.Context, actor domain.Actor, req dto.FundsRequest) (*domain.LedgerEntry, error)

	// UpdateEntryMetadata changes description and notes only.
	UpdateEntryMetadata(ctx context.Context, actor domain.Actor, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerEntry, error)

	// DeleteEntry removes the audit record. The balance effect it recorded stays in place.
	DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error
}

// BudgetReaderSvc defines read operations on the ledger entries.
type BudgetReaderSvc interface {
	GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, actor domain.Actor, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)
	Summarize(ctx context.Context, actor domain.Actor, params dto.LedgerSummaryParams) (*domain.EntrySummary, error)
}

// BudgetSvcFacade combines all budget ledger interfaces.
type BudgetSvcFacade interface {
	BudgetWriterSvc
	BudgetReaderSvc
}
