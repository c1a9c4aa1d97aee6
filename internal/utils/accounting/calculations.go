package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DeductOrderCost takes an order's cost out of the period's capital.
// The period is left untouched when capital cannot cover the cost.
func DeductOrderCost(period *domain.Period, cost decimal.Decimal, now time.Time) error {
	if period.OverallCapital.LessThan(cost) {
		return &apperrors.InsufficientFundsError{
			Kind:      apperrors.ErrInsufficientCapital,
			Account:   string(domain.AccountOverallCapital),
			Available: period.OverallCapital,
			Requested: cost,
		}
	}
	period.OverallCapital = period.OverallCapital.Sub(cost)
	period.UpdatedAt = now
	return nil
}

// AccrueCompletion adds a completed order's customer price to revenue and its profit to profit.
// Capital is not touched.
func AccrueCompletion(period *domain.Period, order domain.Order, now time.Time) {
	period.MonthlyRevenue = period.MonthlyRevenue.Add(order.CustomerPrice)
	period.MonthlyProfit = period.MonthlyProfit.Add(order.Profit)
	period.UpdatedAt = now
}

// ApplyLedgerEntry moves the entry's account by its signed amount. A withdrawal larger than
// the account balance fails and leaves the period untouched.
func ApplyLedgerEntry(period *domain.Period, entry domain.LedgerEntry, now time.Time) error {
	if !entry.Amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if !entry.Account.IsValid() {
		return fmt.Errorf("%w: unknown account %q", apperrors.ErrValidation, entry.Account)
	}
	if !entry.Type.IsValid() {
		return fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, entry.Type)
	}

	if entry.Type == domain.EntryWithdrawal {
		available := period.Balance(entry.Account)
		if available.LessThan(entry.Amount) {
			return &apperrors.InsufficientFundsError{
				Kind:      apperrors.ErrInsufficientBalance,
				Account:   string(entry.Account),
				Available: available,
				Requested: entry.Amount,
			}
		}
	}
	period.Adjust(entry.Account, entry.SignedAmount())
	period.UpdatedAt = now
	return nil
}

// FoldProfit adds the period's profit to its capital and stamps the reset time.
// Revenue is not folded. A period can be folded only once.
func FoldProfit(period *domain.Period, now time.Time) error {
	if period.IsRolledOver() {
		return fmt.Errorf("%w: %s was rolled over at %s",
			apperrors.ErrAlreadyRolledOver, period.Key(), period.ResetAt.Format(time.RFC3339))
	}
	period.OverallCapital = period.OverallCapital.Add(period.MonthlyProfit)
	resetAt := now
	period.ResetAt = &resetAt
	period.UpdatedAt = now
	return nil
}
