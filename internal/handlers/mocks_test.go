package handlers_test

import (
	"context"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ListOrders(ctx context.Context, actor domain.Actor, params dto.ListOrdersParams) ([]domain.Order, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderService) CreateOrder(ctx context.Context, actor domain.Actor, req dto.CreateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) CompleteOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) UpdateOrder(ctx context.Context, actor domain.Actor, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, actor, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

var _ portssvc.OrderSvcFacade = (*MockOrderService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) AddFunds(ctx context.Context, actor domain.Actor, req dto.FundsRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockBudgetService) WithdrawFunds(ctx context.Context, actor domain.Actor, req dto.FundsRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockBudgetService) UpdateEntryMetadata(ctx context.Context, actor domain.Actor, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, actor, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockBudgetService) DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error {
	args := m.Called(ctx, actor, entryID)
	return args.Error(0)
}
func (m *MockBudgetService) GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, actor, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockBudgetService) ListEntries(ctx context.Context, actor domain.Actor, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLedgerEntriesResponse), args.Error(1)
}
func (m *MockBudgetService) Summarize(ctx context.Context, actor domain.Actor, params dto.LedgerSummaryParams) (*domain.EntrySummary, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntrySummary), args.Error(1)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) GetPeriod(ctx context.Context, actor domain.Actor, year, month int) (*domain.Period, error) {
	args := m.Called(ctx, actor, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}
func (m *MockPeriodService) ListPeriods(ctx context.Context, actor domain.Actor, params dto.ListPeriodsParams) ([]domain.Period, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}
func (m *MockPeriodService) GetOrCreateCurrentPeriod(ctx context.Context) (*domain.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

// --- Mock RolloverService ---
type MockRolloverService struct {
	mock.Mock
}

func (m *MockRolloverService) Rollover(ctx context.Context, actor domain.Actor) (*domain.RolloverResult, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RolloverResult), args.Error(1)
}

var _ portssvc.RolloverSvc = (*MockRolloverService)(nil)

// --- Mock BalanceService and BalanceSource ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) For(actor domain.Actor) portssvc.BalanceSource {
	args := m.Called(actor)
	return args.Get(0).(portssvc.BalanceSource)
}

var _ portssvc.BalanceSvc = (*MockBalanceService)(nil)

type MockBalanceSource struct {
	mock.Mock
}

func (m *MockBalanceSource) Kind() domain.BalanceSourceKind {
	args := m.Called()
	return args.Get(0).(domain.BalanceSourceKind)
}
func (m *MockBalanceSource) CurrentBalances(ctx context.Context, actor domain.Actor) (*domain.Balances, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balances), args.Error(1)
}
func (m *MockBalanceSource) Summary(ctx context.Context, actor domain.Actor) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

var _ portssvc.BalanceSource = (*MockBalanceSource)(nil)
