package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/core/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	tx        *MockLedgerTx
	orderRepo *MockOrderRepository
	clock     *domain.ManualClock
	service   portssvc.OrderSvcFacade
	ctx       context.Context
	march     domain.PeriodKey
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.tx = new(MockLedgerTx)
	s.orderRepo = new(MockOrderRepository)
	s.clock = domain.NewManualClock(time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC))
	s.service = services.NewOrderService(s.clock, &MockTxManager{Tx: s.tx}, s.orderRepo)
	s.ctx = context.Background()
	s.march = domain.PeriodKey{Year: 2025, Month: 3}
}

func (s *OrderServiceTestSuite) TearDownTest() {
	s.tx.AssertExpectations(s.T())
	s.orderRepo.AssertExpectations(s.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) pendingOrder(owner domain.ActorRef) *domain.Order {
	o := &domain.Order{
		OrderID:       uuid.NewString(),
		Name:          "desk",
		Quantity:      1,
		Cost:          dec("200"),
		CustomerPrice: dec("300"),
		Taxes:         dec("20"),
		Status:        domain.OrderPending,
		CreatedBy:     owner,
		CreatedAt:     s.clock.Now().AddDate(0, -1, 0),
		UpdatedAt:     s.clock.Now().AddDate(0, -1, 0),
	}
	o.RecomputeProfit()
	return o
}

func (s *OrderServiceTestSuite) TestCreateOrder_DeductsCostFromCapital() {
	period := &domain.Period{PeriodID: "p-1", Year: 2025, Month: 3, OverallCapital: dec("1000")}
	s.tx.On("LockPeriod", mock.Anything, s.march, s.clock.Now()).Return(period, nil).Once()
	s.tx.On("SavePeriodBalances", mock.Anything, mock.MatchedBy(func(p domain.Period) bool {
		return p.OverallCapital.Equal(dec("800")) && p.MonthlyProfit.IsZero()
	})).Return(nil).Once()
	s.tx.On("SaveOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.Status == domain.OrderPending && o.Profit.Equal(dec("80")) && o.CreatedBy == memberActor.Ref
	})).Return(nil).Once()

	order, err := s.service.CreateOrder(s.ctx, memberActor, dto.CreateOrderRequest{
		Name:          "desk",
		Quantity:      1,
		Cost:          dec("200"),
		CustomerPrice: dec("300"),
		Taxes:         dec("20"),
	})

	s.Require().NoError(err)
	s.True(order.Profit.Equal(dec("80")))
	s.Nil(order.CompletedAt)
	_, parseErr := uuid.Parse(order.OrderID)
	s.NoError(parseErr)
}

func (s *OrderServiceTestSuite) TestCreateOrder_InsufficientCapital() {
	period := &domain.Period{PeriodID: "p-1", Year: 2025, Month: 3, OverallCapital: dec("150")}
	s.tx.On("LockPeriod", mock.Anything, s.march, s.clock.Now()).Return(period, nil).Once()

	order, err := s.service.CreateOrder(s.ctx, memberActor, dto.CreateOrderRequest{
		Name: "desk", Quantity: 1, Cost: dec("200"), CustomerPrice: dec("300"),
	})

	s.Nil(order)
	s.ErrorIs(err, apperrors.ErrInsufficientCapital)
	var fundsErr *apperrors.InsufficientFundsError
	s.Require().ErrorAs(err, &fundsErr)
	s.True(fundsErr.Available.Equal(dec("150")))
	s.True(period.OverallCapital.Equal(dec("150")))
	s.tx.AssertNotCalled(s.T(), "SavePeriodBalances", mock.Anything, mock.Anything)
	s.tx.AssertNotCalled(s.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestCreateOrder_ValidationErrors() {
	cases := map[string]dto.CreateOrderRequest{
		"empty name":        {Name: " ", Quantity: 1},
		"zero quantity":     {Name: "x", Quantity: 0},
		"negative cost":     {Name: "x", Quantity: 1, Cost: dec("-1")},
		"negative taxes":    {Name: "x", Quantity: 1, Taxes: dec("-0.01")},
		"cost too precise":  {Name: "x", Quantity: 1, Cost: dec("0.00004")},
		"price too precise": {Name: "x", Quantity: 1, CustomerPrice: dec("10.12345")},
	}
	for name, req := range cases {
		s.Run(name, func() {
			_, err := s.service.CreateOrder(s.ctx, memberActor, req)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.tx.AssertNotCalled(s.T(), "LockPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestCompleteOrder_AccruesIntoCurrentPeriod() {
	order := s.pendingOrder(memberActor.Ref)
	period := &domain.Period{
		PeriodID: "p-1", Year: 2025, Month: 3,
		OverallCapital: dec("800"), MonthlyProfit: dec("0"), MonthlyRevenue: dec("0"),
	}
	s.tx.On("LockOrder", mock.Anything, order.OrderID).Return(order, nil).Once()
	s.tx.On("LockPeriod", mock.Anything, s.march, s.clock.Now()).Return(period, nil).Once()
	s.tx.On("SavePeriodBalances", mock.Anything, mock.MatchedBy(func(p domain.Period) bool {
		return p.MonthlyProfit.Equal(dec("80")) && p.MonthlyRevenue.Equal(dec("300")) && p.OverallCapital.Equal(dec("800"))
	})).Return(nil).Once()
	s.tx.On("UpdateOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.IsCompleted() && o.CompletedAt != nil && o.CompletedAt.Equal(s.clock.Now())
	})).Return(nil).Once()

	completed, err := s.service.CompleteOrder(s.ctx, memberActor, order.OrderID)

	s.Require().NoError(err)
	s.True(completed.IsCompleted())
}

func (s *OrderServiceTestSuite) TestCompleteOrder_AlreadyCompletedIsNoop() {
	order := s.pendingOrder(memberActor.Ref)
	completedAt := s.clock.Now().AddDate(0, 0, -3)
	order.Status = domain.OrderCompleted
	order.CompletedAt = &completedAt
	s.tx.On("LockOrder", mock.Anything, order.OrderID).Return(order, nil).Once()

	got, err := s.service.CompleteOrder(s.ctx, adminActor, order.OrderID)

	s.ErrorIs(err, apperrors.ErrAlreadyCompleted)
	s.Require().NotNil(got)
	s.Equal(order.OrderID, got.OrderID)
	s.tx.AssertNotCalled(s.T(), "LockPeriod", mock.Anything, mock.Anything, mock.Anything)
	s.tx.AssertNotCalled(s.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestCompleteOrder_NotFound() {
	_, err := s.service.CompleteOrder(s.ctx, adminActor, "not-a-uuid")
	s.ErrorIs(err, apperrors.ErrNotFound)

	id := uuid.NewString()
	s.tx.On("LockOrder", mock.Anything, id).Return(nil, apperrors.ErrNotFound).Once()
	_, err = s.service.CompleteOrder(s.ctx, adminActor, id)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *OrderServiceTestSuite) TestCompleteOrder_MemberCannotCompleteOthersOrder() {
	order := s.pendingOrder("someone-else")
	s.tx.On("LockOrder", mock.Anything, order.OrderID).Return(order, nil).Once()

	_, err := s.service.CompleteOrder(s.ctx, memberActor, order.OrderID)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *OrderServiceTestSuite) TestUpdateOrder_RecomputesProfitWithoutTouchingPeriods() {
	order := s.pendingOrder(memberActor.Ref)
	newPrice := dec("350")
	s.tx.On("LockOrder", mock.Anything, order.OrderID).Return(order, nil).Once()
	s.tx.On("UpdateOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.Profit.Equal(dec("130")) && o.CustomerPrice.Equal(newPrice) && !o.IsCompleted()
	})).Return(nil).Once()

	updated, err := s.service.UpdateOrder(s.ctx, memberActor, order.OrderID, dto.UpdateOrderRequest{CustomerPrice: &newPrice})

	s.Require().NoError(err)
	s.True(updated.Profit.Equal(dec("130")))
	s.tx.AssertNotCalled(s.T(), "LockPeriod", mock.Anything, mock.Anything, mock.Anything)
	s.tx.AssertNotCalled(s.T(), "SavePeriodBalances", mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestUpdateOrder_CompletedOrderProfitChangeIsNotRetroactive() {
	order := s.pendingOrder(memberActor.Ref)
	completedAt := s.clock.Now().AddDate(0, 0, -1)
	order.Status = domain.OrderCompleted
	order.CompletedAt = &completedAt
	newCost := dec("100")
	s.tx.On("LockOrder", mock.Anything, order.OrderID).Return(order, nil).Once()
	s.tx.On("UpdateOrder", mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := s.service.UpdateOrder(s.ctx, adminActor, order.OrderID, dto.UpdateOrderRequest{Cost: &newCost})

	s.Require().NoError(err)
	s.True(updated.Profit.Equal(dec("180")))
	s.tx.AssertNotCalled(s.T(), "SavePeriodBalances", mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestUpdateOrder_StatusCompletedGoesThroughCompletion() {
	order := s.pendingOrder(memberActor.Ref)
	status := domain.OrderCompleted
	period := &domain.Period{PeriodID: "p-1", Year: 2025, Month: 3, OverallCapital: dec("800")}
	s.tx.On("LockOrder", mock.Anything, order.OrderID).Return(order, nil).Once()
	s.tx.On("LockPeriod", mock.Anything, s.march, s.clock.Now()).Return(period, nil).Once()
	s.tx.On("SavePeriodBalances", mock.Anything, mock.MatchedBy(func(p domain.Period) bool {
		return p.MonthlyRevenue.Equal(dec("300")) && p.MonthlyProfit.Equal(dec("80"))
	})).Return(nil).Once()
	s.tx.On("UpdateOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.IsCompleted()
	})).Return(nil).Once()

	updated, err := s.service.UpdateOrder(s.ctx, memberActor, order.OrderID, dto.UpdateOrderRequest{Status: &status})

	s.Require().NoError(err)
	s.True(updated.IsCompleted())
}

func (s *OrderServiceTestSuite) TestUpdateOrder_CannotReopen() {
	order := s.pendingOrder(memberActor.Ref)
	order.Status = domain.OrderCompleted
	pending := domain.OrderPending
	s.tx.On("LockOrder", mock.Anything, order.OrderID).Return(order, nil).Once()

	_, err := s.service.UpdateOrder(s.ctx, memberActor, order.OrderID, dto.UpdateOrderRequest{Status: &pending})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *OrderServiceTestSuite) TestUpdateOrder_RejectsAmountsBeyondStoredScale() {
	cost := dec("5.00001")
	_, err := s.service.UpdateOrder(s.ctx, memberActor, uuid.NewString(), dto.UpdateOrderRequest{Cost: &cost})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.tx.AssertNotCalled(s.T(), "LockOrder", mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestGetOrder_MemberSeesOnlyOwnOrders() {
	mine := s.pendingOrder(memberActor.Ref)
	theirs := s.pendingOrder("member-2")
	s.orderRepo.On("FindOrderByID", mock.Anything, mine.OrderID).Return(mine, nil).Once()
	s.orderRepo.On("FindOrderByID", mock.Anything, theirs.OrderID).Return(theirs, nil).Once()

	got, err := s.service.GetOrder(s.ctx, memberActor, mine.OrderID)
	s.Require().NoError(err)
	s.Equal(mine.OrderID, got.OrderID)

	_, err = s.service.GetOrder(s.ctx, memberActor, theirs.OrderID)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *OrderServiceTestSuite) TestListOrders_ScopesMembersToThemselves() {
	s.orderRepo.On("ListOrders", mock.Anything, mock.MatchedBy(func(f domain.OrderFilter) bool {
		return f.CreatedBy != nil && *f.CreatedBy == memberActor.Ref && f.Limit == 50
	})).Return(nil, nil).Once()
	s.orderRepo.On("ListOrders", mock.Anything, mock.MatchedBy(func(f domain.OrderFilter) bool {
		return f.CreatedBy == nil && f.Limit == 10
	})).Return([]domain.Order{*s.pendingOrder("x")}, nil).Once()

	mine, err := s.service.ListOrders(s.ctx, memberActor, dto.ListOrdersParams{})
	s.Require().NoError(err)
	s.NotNil(mine)
	s.Empty(mine)

	all, err := s.service.ListOrders(s.ctx, adminActor, dto.ListOrdersParams{Limit: 10})
	s.Require().NoError(err)
	s.Len(all, 1)
}
