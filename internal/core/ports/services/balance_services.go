package services

import (
	"context"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
)

// BalanceSource computes the current balances visible to an actor.
type BalanceSource interface {
	Kind() domain.BalanceSourceKind
	CurrentBalances(ctx context.Context, actor domain.Actor) (*domain.Balances, error)
	Summary(ctx context.Context, actor domain.Actor) (*domain.FinancialSummary, error)
}

// BalanceSvc selects the BalanceSource for an actor's access level.
type BalanceSvc interface {
	For(actor domain.Actor) BalanceSource
}
