package accounting

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeductOrderCost(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("enough capital", func(t *testing.T) {
		p := domain.Period{OverallCapital: d("1000")}
		require.NoError(t, DeductOrderCost(&p, d("200"), now))
		assert.True(t, d("800").Equal(p.OverallCapital))
		assert.Equal(t, now, p.UpdatedAt)
	})

	t.Run("exactly all capital", func(t *testing.T) {
		p := domain.Period{OverallCapital: d("200")}
		require.NoError(t, DeductOrderCost(&p, d("200"), now))
		assert.True(t, p.OverallCapital.IsZero())
	})

	t.Run("insufficient capital leaves period untouched", func(t *testing.T) {
		p := domain.Period{OverallCapital: d("100")}
		before := p
		err := DeductOrderCost(&p, d("100.01"), now)
		require.ErrorIs(t, err, apperrors.ErrInsufficientCapital)

		var funds *apperrors.InsufficientFundsError
		require.True(t, errors.As(err, &funds))
		assert.True(t, d("100").Equal(funds.Available))
		assert.Equal(t, before, p)
	})
}

func TestApplyLedgerEntry(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	p := domain.Period{MonthlyProfit: d("80"), OverallCapital: d("800")}
	withdraw := domain.LedgerEntry{Type: domain.EntryWithdrawal, Account: domain.AccountMonthlyProfit, Amount: d("50")}
	require.NoError(t, ApplyLedgerEntry(&p, withdraw, now))
	assert.True(t, d("30").Equal(p.MonthlyProfit))

	add := domain.LedgerEntry{Type: domain.EntryAddition, Account: domain.AccountMonthlyProfit, Amount: d("50")}
	require.NoError(t, ApplyLedgerEntry(&p, add, now))
	assert.True(t, d("80").Equal(p.MonthlyProfit))

	tooMuch := domain.LedgerEntry{Type: domain.EntryWithdrawal, Account: domain.AccountOverallCapital, Amount: d("801")}
	before := p
	err := ApplyLedgerEntry(&p, tooMuch, now)
	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	assert.Equal(t, before, p)

	zero := domain.LedgerEntry{Type: domain.EntryAddition, Account: domain.AccountOverallCapital, Amount: decimal.Zero}
	assert.ErrorIs(t, ApplyLedgerEntry(&p, zero, now), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, ApplyLedgerEntry(&p, zero, now), apperrors.ErrValidation)
}

func TestFoldProfit(t *testing.T) {
	now := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)
	p := domain.Period{MonthlyProfit: d("30"), MonthlyRevenue: d("300"), OverallCapital: d("800")}

	require.NoError(t, FoldProfit(&p, now))
	assert.True(t, d("830").Equal(p.OverallCapital))
	assert.True(t, d("300").Equal(p.MonthlyRevenue), "revenue is never folded")
	require.NotNil(t, p.ResetAt)

	err := FoldProfit(&p, now.Add(time.Minute))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRolledOver)
	assert.True(t, d("830").Equal(p.OverallCapital))
}

func TestAccrueCompletion(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	p := domain.Period{OverallCapital: d("800")}
	o := domain.Order{Cost: d("200"), CustomerPrice: d("300"), Taxes: d("20"), Quantity: 3}
	o.RecomputeProfit()

	AccrueCompletion(&p, o, now)
	assert.True(t, d("80").Equal(p.MonthlyProfit))
	assert.True(t, d("300").Equal(p.MonthlyRevenue))
	assert.True(t, d("800").Equal(p.OverallCapital))
}
