package dto

import (
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest defines the data needed to create a new order.
type CreateOrderRequest struct {
	Name          string          `json:"name" binding:"required,max=255"`
	Quantity      int             `json:"quantity" binding:"required,min=1"`
	Cost          decimal.Decimal `json:"cost" binding:"gte=0"`
	CustomerPrice decimal.Decimal `json:"customerPrice" binding:"gte=0"`
	Taxes         decimal.Decimal `json:"taxes" binding:"gte=0"`
}

// UpdateOrderRequest defines the data allowed for updating an order.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateOrderRequest struct {
	Name          *string             `json:"name" binding:"omitempty,max=255"`
	Quantity      *int                `json:"quantity" binding:"omitempty,min=1"`
	Cost          *decimal.Decimal    `json:"cost" binding:"omitempty,gte=0"`
	CustomerPrice *decimal.Decimal    `json:"customerPrice" binding:"omitempty,gte=0"`
	Taxes         *decimal.Decimal    `json:"taxes" binding:"omitempty,gte=0"`
	Status        *domain.OrderStatus `json:"status" binding:"omitempty,oneof=pending completed"`
}

// ChangesPrice reports whether the patch touches any input of the derived profit.
func (r UpdateOrderRequest) ChangesPrice() bool {
	return r.Cost != nil || r.CustomerPrice != nil || r.Taxes != nil
}

// ListOrdersParams defines the query parameters for listing orders.
type ListOrdersParams struct {
	Status *domain.OrderStatus `form:"status" binding:"omitempty,oneof=pending completed"`
	Limit  int                 `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int                 `form:"offset" binding:"omitempty,min=0"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID       string             `json:"orderID"`
	Name          string             `json:"name"`
	Quantity      int                `json:"quantity"`
	Cost          decimal.Decimal    `json:"cost"`
	CustomerPrice decimal.Decimal    `json:"customerPrice"`
	Taxes         decimal.Decimal    `json:"taxes"`
	Profit        decimal.Decimal    `json:"profit"`
	Status        domain.OrderStatus `json:"status"`
	CreatedBy     string             `json:"createdBy"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	CompletedAt   *time.Time         `json:"completedAt,omitempty"`
}

// CompleteOrderResponse is returned by the completion endpoint.
// AlreadyCompleted is true when the call accrued nothing.
type CompleteOrderResponse struct {
	Order            OrderResponse `json:"order"`
	AlreadyCompleted bool          `json:"alreadyCompleted"`
}

// ListOrdersResponse wraps a list of orders.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:       o.OrderID,
		Name:          o.Name,
		Quantity:      o.Quantity,
		Cost:          o.Cost,
		CustomerPrice: o.CustomerPrice,
		Taxes:         o.Taxes,
		Profit:        o.Profit,
		Status:        o.Status,
		CreatedBy:     string(o.CreatedBy),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		CompletedAt:   o.CompletedAt,
	}
}

// ToListOrdersResponse converts a slice of domain.Order to ListOrdersResponse.
func ToListOrdersResponse(orders []domain.Order) ListOrdersResponse {
	list := make([]OrderResponse, len(orders))
	for i := range orders {
		list[i] = ToOrderResponse(&orders[i])
	}
	return ListOrdersResponse{Orders: list}
}
