package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/SscSPs/capital_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultOrderListLimit = 50

// orderService implements the OrderSvcFacade interface. Order creation and completion
// move the current period's balances in the same transaction as the order write.
type orderService struct {
	BaseService
	txManager portsrepo.TransactionManager
	orderRepo portsrepo.OrderReader
}

// NewOrderService creates a new order service with the provided dependencies
func NewOrderService(clock domain.Clock, txManager portsrepo.TransactionManager, orderRepo portsrepo.OrderReader) portssvc.OrderSvcFacade {
	return &orderService{
		BaseService: BaseService{Clock: clock},
		txManager:   txManager,
		orderRepo:   orderRepo,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) CreateOrder(ctx context.Context, actor domain.Actor, req dto.CreateOrderRequest) (*domain.Order, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: order name is required", apperrors.ErrValidation)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrValidation)
	}
	if req.Cost.IsNegative() || req.CustomerPrice.IsNegative() || req.Taxes.IsNegative() {
		return nil, fmt.Errorf("%w: cost, customer price and taxes cannot be negative", apperrors.ErrValidation)
	}
	if err := checkScale(req.Cost, req.CustomerPrice, req.Taxes); err != nil {
		return nil, err
	}

	now := s.Now()
	order := domain.Order{
		OrderID:       uuid.NewString(),
		Name:          req.Name,
		Quantity:      req.Quantity,
		Cost:          req.Cost,
		CustomerPrice: req.CustomerPrice,
		Taxes:         req.Taxes,
		Status:        domain.OrderPending,
		CreatedBy:     actor.Ref,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.RecomputeProfit()

	key := domain.PeriodKeyOf(now)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		period, err := tx.LockPeriod(ctx, key, now)
		if err != nil {
			return err
		}
		if err := accounting.DeductOrderCost(period, order.Cost, now); err != nil {
			return err
		}
		if err := tx.SavePeriodBalances(ctx, *period); err != nil {
			return err
		}
		return tx.SaveOrder(ctx, order)
	})
	if err != nil {
		var fundsErr *apperrors.InsufficientFundsError
		if errors.As(err, &fundsErr) {
			s.LogInfo(ctx, "Order rejected for insufficient capital",
				slog.String("period", key.String()),
				slog.String("available", fundsErr.Available.String()),
				slog.String("cost", order.Cost.String()))
		} else {
			s.LogError(ctx, err, "Failed to create order", slog.String("period", key.String()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Order created and cost deducted from capital",
		slog.String("order_id", order.OrderID),
		slog.String("period", key.String()),
		slog.String("cost", order.Cost.String()))
	return &order, nil
}

func (s *orderService) CompleteOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, apperrors.ErrNotFound
	}

	var order *domain.Order
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		o, err := s.lockOwnedOrder(ctx, tx, actor, orderID)
		if err != nil {
			return err
		}
		order = o
		if o.IsCompleted() {
			return apperrors.ErrAlreadyCompleted
		}
		if err := s.completeLocked(ctx, tx, o); err != nil {
			return err
		}
		return tx.UpdateOrder(ctx, *o)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyCompleted) {
			s.LogDebug(ctx, "Order already completed, nothing accrued", slog.String("order_id", orderID))
			return order, err
		}
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrForbidden) {
			s.LogError(ctx, err, "Failed to complete order", slog.String("order_id", orderID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Order completed and accrued into current period",
		slog.String("order_id", order.OrderID),
		slog.String("profit", order.Profit.String()))
	return order, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, actor domain.Actor, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	if err := validateOrderPatch(req); err != nil {
		return nil, err
	}

	var order *domain.Order
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		o, err := s.lockOwnedOrder(ctx, tx, actor, orderID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			o.Name = *req.Name
		}
		if req.Quantity != nil {
			o.Quantity = *req.Quantity
		}
		if req.Cost != nil {
			o.Cost = *req.Cost
		}
		if req.CustomerPrice != nil {
			o.CustomerPrice = *req.CustomerPrice
		}
		if req.Taxes != nil {
			o.Taxes = *req.Taxes
		}
		// Profit follows the new prices. Whatever was accrued before stays in its period.
		if req.ChangesPrice() {
			o.RecomputeProfit()
		}
		o.UpdatedAt = s.Now()

		if req.Status != nil {
			switch {
			case *req.Status == domain.OrderCompleted && !o.IsCompleted():
				if err := s.completeLocked(ctx, tx, o); err != nil {
					return err
				}
			case *req.Status == domain.OrderPending && o.IsCompleted():
				return fmt.Errorf("%w: a completed order cannot return to pending", apperrors.ErrValidation)
			}
		}

		order = o
		return tx.UpdateOrder(ctx, *o)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrForbidden) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update order", slog.String("order_id", orderID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Order updated",
		slog.String("order_id", order.OrderID),
		slog.Bool("profit_recomputed", req.ChangesPrice()))
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find order by ID", slog.String("order_id", orderID))
		}
		return nil, err
	}
	if !canSeeOrder(actor, order) {
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor domain.Actor, params dto.ListOrdersParams) ([]domain.Order, error) {
	filter := domain.OrderFilter{Status: params.Status, Limit: params.Limit, Offset: params.Offset}
	if filter.Limit <= 0 {
		filter.Limit = defaultOrderListLimit
	}
	if !actor.IsAdmin() {
		ref := actor.Ref
		filter.CreatedBy = &ref
	}

	orders, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders", slog.String("actor", string(actor.Ref)))
		return nil, err
	}
	if orders == nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}

// lockOwnedOrder locks the order and checks the actor may change it.
func (s *orderService) lockOwnedOrder(ctx context.Context, tx portsrepo.LedgerTx, actor domain.Actor, orderID string) (*domain.Order, error) {
	order, err := tx.LockOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canSeeOrder(actor, order) {
		s.LogDebug(ctx, "Actor is not allowed to change order",
			slog.String("actor", string(actor.Ref)),
			slog.String("order_id", orderID))
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}

// completeLocked accrues a pending order into the period current at this moment, which
// need not be the period the order was created in.
func (s *orderService) completeLocked(ctx context.Context, tx portsrepo.LedgerTx, order *domain.Order) error {
	now := s.Now()
	period, err := tx.LockPeriod(ctx, domain.PeriodKeyOf(now), now)
	if err != nil {
		return err
	}
	accounting.AccrueCompletion(period, *order, now)
	if err := tx.SavePeriodBalances(ctx, *period); err != nil {
		return err
	}

	completedAt := now
	order.Status = domain.OrderCompleted
	order.CompletedAt = &completedAt
	order.UpdatedAt = now
	return nil
}

func validateOrderPatch(req dto.UpdateOrderRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("%w: order name cannot be empty", apperrors.ErrValidation)
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrValidation)
	}
	for _, v := range []*decimal.Decimal{req.Cost, req.CustomerPrice, req.Taxes} {
		if v == nil {
			continue
		}
		if v.IsNegative() {
			return fmt.Errorf("%w: cost, customer price and taxes cannot be negative", apperrors.ErrValidation)
		}
		if err := checkScale(*v); err != nil {
			return err
		}
	}
	return nil
}

func checkScale(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if !domain.WithinScale(a) {
			return fmt.Errorf("%w: %s has more than %d decimal places", apperrors.ErrValidation, a.String(), domain.AmountScale)
		}
	}
	return nil
}

func canSeeOrder(actor domain.Actor, order *domain.Order) bool {
	return actor.IsAdmin() || order.CreatedBy == actor.Ref
}
