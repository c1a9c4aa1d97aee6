package services

import (
	"context"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/dto"
)

// OrderReaderSvc defines read operations on orders.
type OrderReaderSvc interface {
	GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, actor domain.Actor, params dto.ListOrdersParams) ([]domain.Order, error)
}

// OrderWriterSvc defines the order lifecycle events that move period balances.
type OrderWriterSvc interface {
	// CreateOrder deducts the order cost from current capital and stores the order atomically.
	CreateOrder(ctx context.Context, actor domain.Actor, req dto.CreateOrderRequest) (*domain.Order, error)

	// CompleteOrder accrues revenue and profit into the period current at completion time.
	// An order completed earlier is returned together with apperrors.ErrAlreadyCompleted.
	CompleteOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)

	// UpdateOrder patches order fields and recomputes profit without touching any period.
	// A status change to completed goes through the completion path.
	UpdateOrder(ctx context.Context, actor domain.Actor, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error)
}

// OrderSvcFacade combines all order service interfaces.
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
