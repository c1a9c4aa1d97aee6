package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BudgetHandlerTestSuite struct {
	handlerSuite
}

func sampleEntry(entryType domain.EntryType, amount int64) *domain.LedgerEntry {
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	return &domain.LedgerEntry{
		EntryID:       "3c0e9a3e-7a55-4a0c-8d0e-51a1b2f8a001",
		Type:          entryType,
		Account:       domain.AccountOverallCapital,
		Amount:        decimal.NewFromInt(amount),
		Description:   "Owner top-up",
		CreatedBy:     testAdminID,
		CreatedAt:     now,
		EffectiveDate: now,
		LastUpdatedAt: now,
	}
}

func (s *BudgetHandlerTestSuite) TestAddFunds_Success() {
	entry := sampleEntry(domain.EntryAddition, 1000)
	s.budget.On("AddFunds", mock.Anything, adminActor, mock.MatchedBy(func(req dto.FundsRequest) bool {
		return req.Account == domain.AccountOverallCapital && req.Amount.Equal(decimal.NewFromInt(1000))
	})).Return(entry, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/budget/add", map[string]any{
		"account": "overall_capital", "amount": "1000", "description": "Owner top-up",
	}, domain.AccessAdmin)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.LedgerEntryResponse
	s.decode(w, &resp)
	s.Equal(entry.EntryID, resp.EntryID)
	s.Equal(domain.EntryAddition, resp.Type)
	s.assertMocks()
}

func (s *BudgetHandlerTestSuite) TestAddFunds_UnknownAccount() {
	w := s.do(http.MethodPost, "/api/v1/budget/add", map[string]any{
		"account": "petty_cash", "amount": 10,
	}, domain.AccessAdmin)

	s.Equal(http.StatusBadRequest, w.Code)
	s.budget.AssertNotCalled(s.T(), "AddFunds", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BudgetHandlerTestSuite) TestAddFunds_ZeroAmount() {
	s.budget.On("AddFunds", mock.Anything, memberActor, mock.Anything).Return(nil, apperrors.ErrInvalidAmount).Once()

	w := s.do(http.MethodPost, "/api/v1/budget/add", map[string]any{
		"account": "monthly_profit", "amount": 0,
	}, domain.AccessMember)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "greater than zero")
	s.assertMocks()
}

func (s *BudgetHandlerTestSuite) TestWithdrawFunds_InsufficientBalance() {
	s.budget.On("WithdrawFunds", mock.Anything, adminActor, mock.Anything).Return(nil, &apperrors.InsufficientFundsError{
		Kind:      apperrors.ErrInsufficientBalance,
		Account:   string(domain.AccountMonthlyProfit),
		Available: decimal.NewFromInt(30),
		Requested: decimal.NewFromInt(50),
	}).Once()

	w := s.do(http.MethodPost, "/api/v1/budget/withdraw", map[string]any{
		"account": "monthly_profit", "amount": 50,
	}, domain.AccessAdmin)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(w.Body.String(), "insufficient balance")
	s.assertMocks()
}

func (s *BudgetHandlerTestSuite) TestListEntries_ReturnsNextToken() {
	token := "eyJ0IjoxfQ"
	s.budget.On("ListEntries", mock.Anything, adminActor, mock.MatchedBy(func(p dto.ListLedgerEntriesParams) bool {
		return p.Limit == 1 && p.Type != nil && *p.Type == domain.EntryAddition && p.From != nil
	})).Return(&dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses([]domain.LedgerEntry{*sampleEntry(domain.EntryAddition, 10)}),
		NextToken: &token,
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/budget/entries?type=addition&limit=1&from=2024-03-01", nil, domain.AccessAdmin)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListLedgerEntriesResponse
	s.decode(w, &resp)
	s.Len(resp.Entries, 1)
	s.Require().NotNil(resp.NextToken)
	s.Equal(token, *resp.NextToken)
	s.assertMocks()
}

func (s *BudgetHandlerTestSuite) TestUpdateEntry_ImmutableField() {
	s.budget.On("UpdateEntryMetadata", mock.Anything, adminActor, "e-1", mock.MatchedBy(func(req dto.UpdateLedgerEntryRequest) bool {
		return req.TouchesImmutableFields()
	})).Return(nil, apperrors.ErrImmutableField).Once()

	w := s.do(http.MethodPatch, "/api/v1/budget/entries/e-1", map[string]any{"amount": 5}, domain.AccessAdmin)

	s.Equal(http.StatusBadRequest, w.Code)
	s.assertMocks()
}

func (s *BudgetHandlerTestSuite) TestDeleteEntry_WarnsBalanceNotReversed() {
	entry := sampleEntry(domain.EntryWithdrawal, 1250)
	s.budget.On("GetEntry", mock.Anything, adminActor, entry.EntryID).Return(entry, nil).Once()
	s.budget.On("DeleteEntry", mock.Anything, adminActor, entry.EntryID).Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/budget/entries/"+entry.EntryID, nil, domain.AccessAdmin)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("withdrawal of $1,250.00 on overall_capital was not reversed", w.Header().Get("X-Ledger-Warning"))
	s.assertMocks()
}

func (s *BudgetHandlerTestSuite) TestDeleteEntry_MemberForbidden() {
	entry := sampleEntry(domain.EntryAddition, 10)
	s.budget.On("GetEntry", mock.Anything, memberActor, entry.EntryID).Return(entry, nil).Once()
	s.budget.On("DeleteEntry", mock.Anything, memberActor, entry.EntryID).Return(apperrors.ErrForbidden).Once()

	w := s.do(http.MethodDelete, "/api/v1/budget/entries/"+entry.EntryID, nil, domain.AccessMember)

	s.Equal(http.StatusForbidden, w.Code)
	s.Empty(w.Header().Get("X-Ledger-Warning"))
	s.assertMocks()
}

func (s *BudgetHandlerTestSuite) TestDeleteEntry_NotFound() {
	s.budget.On("GetEntry", mock.Anything, adminActor, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodDelete, "/api/v1/budget/entries/missing", nil, domain.AccessAdmin)

	s.Equal(http.StatusNotFound, w.Code)
	s.budget.AssertNotCalled(s.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BudgetHandlerTestSuite) TestSummary() {
	s.budget.On("Summarize", mock.Anything, adminActor, mock.MatchedBy(func(p dto.LedgerSummaryParams) bool {
		return p.Account != nil && *p.Account == domain.AccountMonthlyProfit
	})).Return(&domain.EntrySummary{
		TotalAdditions:   decimal.NewFromInt(100),
		TotalWithdrawals: decimal.NewFromInt(40),
		NetChange:        decimal.NewFromInt(60),
		Count:            3,
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/budget/summary?account=monthly_profit", nil, domain.AccessAdmin)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.LedgerSummaryResponse
	s.decode(w, &resp)
	s.Equal(3, resp.Count)
	s.True(resp.NetChange.Equal(decimal.NewFromInt(60)))
	s.assertMocks()
}

func (s *BudgetHandlerTestSuite) TestSummary_FiltersByType() {
	s.budget.On("Summarize", mock.Anything, memberActor, mock.MatchedBy(func(p dto.LedgerSummaryParams) bool {
		return p.Type != nil && *p.Type == domain.EntryWithdrawal && p.Account == nil
	})).Return(&domain.EntrySummary{TotalWithdrawals: decimal.NewFromInt(40), NetChange: decimal.NewFromInt(-40), Count: 1}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/budget/summary?type=withdrawal", nil, domain.AccessMember)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.LedgerSummaryResponse
	s.decode(w, &resp)
	s.Equal(1, resp.Count)
	s.assertMocks()
}

func (s *BudgetHandlerTestSuite) TestSummary_InvalidType() {
	w := s.do(http.MethodGet, "/api/v1/budget/summary?type=refund", nil, domain.AccessAdmin)

	s.Equal(http.StatusBadRequest, w.Code)
	s.budget.AssertNotCalled(s.T(), "Summarize", mock.Anything, mock.Anything, mock.Anything)
}

func TestBudgetHandler(t *testing.T) {
	suite.Run(t, new(BudgetHandlerTestSuite))
}
