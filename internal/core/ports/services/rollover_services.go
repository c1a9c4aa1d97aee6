package services

import (
	"context"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
)

// RolloverSvc folds the current period's profit into capital and opens the next period.
type RolloverSvc interface {
	// Rollover fails with apperrors.ErrAlreadyRolledOver when the current period was folded before.
	Rollover(ctx context.Context, actor domain.Actor) (*domain.RolloverResult, error)
}
