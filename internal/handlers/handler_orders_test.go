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

type OrderHandlerTestSuite struct {
	handlerSuite
}

func sampleOrder(status domain.OrderStatus) *domain.Order {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Order{
		OrderID:       "8a1f6f43-2a1d-4c55-9a53-0b5f3f1c1f11",
		Name:          "Walnut table",
		Quantity:      2,
		Cost:          decimal.NewFromInt(200),
		CustomerPrice: decimal.NewFromInt(300),
		Taxes:         decimal.NewFromInt(20),
		Profit:        decimal.NewFromInt(80),
		Status:        status,
		CreatedBy:     testMemberID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *OrderHandlerTestSuite) TestCreateOrder_Success() {
	order := sampleOrder(domain.OrderPending)
	s.orders.On("CreateOrder", mock.Anything, memberActor, mock.MatchedBy(func(req dto.CreateOrderRequest) bool {
		return req.Name == "Walnut table" && req.Quantity == 2 &&
			req.Cost.Equal(decimal.NewFromInt(200)) && req.Taxes.Equal(decimal.NewFromInt(20))
	})).Return(order, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"name": "Walnut table", "quantity": 2, "cost": 200, "customerPrice": 300, "taxes": 20,
	}, domain.AccessMember)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.OrderResponse
	s.decode(w, &resp)
	s.Equal(order.OrderID, resp.OrderID)
	s.True(resp.Profit.Equal(decimal.NewFromInt(80)))
	s.Equal(domain.OrderPending, resp.Status)
	s.assertMocks()
}

func (s *OrderHandlerTestSuite) TestCreateOrder_InsufficientCapital() {
	s.orders.On("CreateOrder", mock.Anything, memberActor, mock.Anything).Return(nil, &apperrors.InsufficientFundsError{
		Kind:      apperrors.ErrInsufficientCapital,
		Account:   string(domain.AccountOverallCapital),
		Available: decimal.NewFromInt(100),
		Requested: decimal.NewFromInt(200),
	}).Once()

	w := s.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"name": "Walnut table", "quantity": 1, "cost": 200, "customerPrice": 300, "taxes": 0,
	}, domain.AccessMember)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	var body map[string]any
	s.decode(w, &body)
	s.Equal("overall_capital", body["account"])
	s.Equal("100", body["available"])
	s.Equal("200", body["requested"])
	s.assertMocks()
}

func (s *OrderHandlerTestSuite) TestCreateOrder_NegativeCostRejectedByBinding() {
	w := s.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"name": "Broken", "quantity": 1, "cost": -5, "customerPrice": 10, "taxes": 0,
	}, domain.AccessMember)

	s.Equal(http.StatusBadRequest, w.Code)
	s.orders.AssertNotCalled(s.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderHandlerTestSuite) TestCreateOrder_MissingToken() {
	w := s.do(http.MethodPost, "/api/v1/orders", map[string]any{"name": "x", "quantity": 1}, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.orders.AssertNotCalled(s.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderHandlerTestSuite) TestCompleteOrder_Success() {
	order := sampleOrder(domain.OrderCompleted)
	s.orders.On("CompleteOrder", mock.Anything, adminActor, order.OrderID).Return(order, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/orders/"+order.OrderID+"/complete", nil, domain.AccessAdmin)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.CompleteOrderResponse
	s.decode(w, &resp)
	s.False(resp.AlreadyCompleted)
	s.Equal(domain.OrderCompleted, resp.Order.Status)
	s.assertMocks()
}

func (s *OrderHandlerTestSuite) TestCompleteOrder_AlreadyCompletedIsNotAnError() {
	order := sampleOrder(domain.OrderCompleted)
	s.orders.On("CompleteOrder", mock.Anything, memberActor, order.OrderID).
		Return(order, apperrors.ErrAlreadyCompleted).Once()

	w := s.do(http.MethodPost, "/api/v1/orders/"+order.OrderID+"/complete", nil, domain.AccessMember)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.CompleteOrderResponse
	s.decode(w, &resp)
	s.True(resp.AlreadyCompleted)
	s.Equal(order.OrderID, resp.Order.OrderID)
	s.assertMocks()
}

func (s *OrderHandlerTestSuite) TestGetOrder_ForbiddenForOtherMember() {
	s.orders.On("GetOrder", mock.Anything, memberActor, "someone-elses").Return(nil, apperrors.ErrForbidden).Once()

	w := s.do(http.MethodGet, "/api/v1/orders/someone-elses", nil, domain.AccessMember)

	s.Equal(http.StatusForbidden, w.Code)
	s.assertMocks()
}

func (s *OrderHandlerTestSuite) TestListOrders_PassesQuery() {
	s.orders.On("ListOrders", mock.Anything, adminActor, mock.MatchedBy(func(p dto.ListOrdersParams) bool {
		return p.Status != nil && *p.Status == domain.OrderPending && p.Limit == 5
	})).Return([]domain.Order{*sampleOrder(domain.OrderPending)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/orders?status=pending&limit=5", nil, domain.AccessAdmin)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListOrdersResponse
	s.decode(w, &resp)
	s.Len(resp.Orders, 1)
	s.assertMocks()
}

func (s *OrderHandlerTestSuite) TestListOrders_InvalidStatus() {
	w := s.do(http.MethodGet, "/api/v1/orders?status=shipped", nil, domain.AccessAdmin)

	s.Equal(http.StatusBadRequest, w.Code)
	s.orders.AssertNotCalled(s.T(), "ListOrders", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderHandlerTestSuite) TestUpdateOrder_ReopenIsValidationError() {
	s.orders.On("UpdateOrder", mock.Anything, adminActor, "o-1", mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	w := s.do(http.MethodPatch, "/api/v1/orders/o-1", map[string]any{"status": "pending"}, domain.AccessAdmin)

	s.Equal(http.StatusBadRequest, w.Code)
	s.assertMocks()
}

func TestOrderHandler(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}
