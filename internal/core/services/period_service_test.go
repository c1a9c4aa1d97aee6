package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/core/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPeriodService(t *testing.T) {
	now := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("GetOrCreateCurrentPeriod uses the clock", func(t *testing.T) {
		tx := new(MockLedgerTx)
		repo := new(MockPeriodRepository)
		svc := services.NewPeriodService(domain.NewManualClock(now), &MockTxManager{Tx: tx}, repo)
		want := &domain.Period{PeriodID: "p-jan", Year: 2025, Month: 1, OverallCapital: dec("500")}
		tx.On("LockPeriod", mock.Anything, domain.PeriodKey{Year: 2025, Month: 1}, now).Return(want, nil).Once()

		got, err := svc.GetOrCreateCurrentPeriod(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		tx.AssertExpectations(t)
	})

	t.Run("GetPeriod validates month", func(t *testing.T) {
		repo := new(MockPeriodRepository)
		svc := services.NewPeriodService(domain.NewManualClock(now), &MockTxManager{}, repo)

		_, err := svc.GetPeriod(ctx, adminActor, 2025, 13)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		_, err = svc.GetPeriod(ctx, adminActor, 2025, 0)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "FindPeriod", mock.Anything, mock.Anything)
	})

	t.Run("GetPeriod does not create missing periods", func(t *testing.T) {
		tx := new(MockLedgerTx)
		repo := new(MockPeriodRepository)
		svc := services.NewPeriodService(domain.NewManualClock(now), &MockTxManager{Tx: tx}, repo)
		repo.On("FindPeriod", mock.Anything, domain.PeriodKey{Year: 2024, Month: 6}).Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.GetPeriod(ctx, adminActor, 2024, 6)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		tx.AssertNotCalled(t, "LockPeriod", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("period reads are admin only", func(t *testing.T) {
		repo := new(MockPeriodRepository)
		svc := services.NewPeriodService(domain.NewManualClock(now), &MockTxManager{}, repo)

		_, err := svc.GetPeriod(ctx, memberActor, 2025, 1)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		_, err = svc.ListPeriods(ctx, memberActor, dto.ListPeriodsParams{})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("ListPeriods applies default limit", func(t *testing.T) {
		repo := new(MockPeriodRepository)
		svc := services.NewPeriodService(domain.NewManualClock(now), &MockTxManager{}, repo)
		year := 2024
		repo.On("ListPeriods", mock.Anything, domain.PeriodFilter{Year: &year, Limit: 24}).Return(nil, nil).Once()

		periods, err := svc.ListPeriods(ctx, adminActor, dto.ListPeriodsParams{Year: &year})

		require.NoError(t, err)
		assert.NotNil(t, periods)
		assert.Empty(t, periods)
		repo.AssertExpectations(t)
	})
}
