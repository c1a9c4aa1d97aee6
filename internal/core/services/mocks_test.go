package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager: runs fn against the mocked LedgerTx ---
type MockTxManager struct {
	Tx *MockLedgerTx
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return fn(ctx, m.Tx)
}

// --- Mock LedgerTx ---
type MockLedgerTx struct {
	mock.Mock
}

func (m *MockLedgerTx) LockPeriod(ctx context.Context, key domain.PeriodKey, now time.Time) (*domain.Period, error) {
	args := m.Called(ctx, key, now)
	var p *domain.Period
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Period)
	}
	return p, args.Error(1)
}

func (m *MockLedgerTx) EnsurePeriod(ctx context.Context, key domain.PeriodKey, openingCapital decimal.Decimal, now time.Time) (bool, error) {
	args := m.Called(ctx, key, openingCapital, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerTx) SavePeriodBalances(ctx context.Context, period domain.Period) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockLedgerTx) SaveLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerTx) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockLedgerTx) LockOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	var o *domain.Order
	if args.Get(0) != nil {
		o = args.Get(0).(*domain.Order)
	}
	return o, args.Error(1)
}

func (m *MockLedgerTx) UpdateOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// --- Mock PeriodReader ---
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriod(ctx context.Context, key domain.PeriodKey) (*domain.Period, error) {
	args := m.Called(ctx, key)
	var p *domain.Period
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Period)
	}
	return p, args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, filter domain.PeriodFilter) ([]domain.Period, error) {
	args := m.Called(ctx, filter)
	var periods []domain.Period
	if args.Get(0) != nil {
		periods = args.Get(0).([]domain.Period)
	}
	return periods, args.Error(1)
}

// --- Mock LedgerEntryRepositoryFacade ---
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	var e *domain.LedgerEntry
	if args.Get(0) != nil {
		e = args.Get(0).(*domain.LedgerEntry)
	}
	return e, args.Error(1)
}

func (m *MockLedgerEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerEntryRepository) SummarizeEntries(ctx context.Context, filter domain.EntryFilter) (domain.EntrySummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.EntrySummary), args.Error(1)
}

func (m *MockLedgerEntryRepository) UpdateEntryMetadata(ctx context.Context, entryID string, description, notes *string, updatedAt time.Time) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, description, notes, updatedAt)
	var e *domain.LedgerEntry
	if args.Get(0) != nil {
		e = args.Get(0).(*domain.LedgerEntry)
	}
	return e, args.Error(1)
}

func (m *MockLedgerEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock OrderReader ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	var o *domain.Order
	if args.Get(0) != nil {
		o = args.Get(0).(*domain.Order)
	}
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderRepository) SumCompletedOrders(ctx context.Context, createdBy domain.ActorRef, from, to *time.Time) (domain.OrderTotals, error) {
	args := m.Called(ctx, createdBy, from, to)
	return args.Get(0).(domain.OrderTotals), args.Error(1)
}

var (
	adminActor  = domain.Actor{Ref: "admin-1", Level: domain.AccessAdmin}
	memberActor = domain.Actor{Ref: "member-1", Level: domain.AccessMember}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
