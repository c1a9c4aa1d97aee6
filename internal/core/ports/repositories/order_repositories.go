package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
)

// OrderReader defines read operations on orders.
type OrderReader interface {
	// FindOrderByID retrieves an order by its unique identifier.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves orders newest first.
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	// SumCompletedOrders aggregates an actor's completed orders. A nil bound is open.
	// from is inclusive and to is exclusive, both compared against completion time.
	SumCompletedOrders(ctx context.Context, createdBy domain.ActorRef, from, to *time.Time) (domain.OrderTotals, error)
}
