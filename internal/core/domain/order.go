package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

// Order carries the fields of a customer order that affect balances.
type Order struct {
	OrderID       string          `json:"orderID"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Cost          decimal.Decimal `json:"cost"`
	CustomerPrice decimal.Decimal `json:"customerPrice"`
	Taxes         decimal.Decimal `json:"taxes"`
	Profit        decimal.Decimal `json:"profit"`
	Status        OrderStatus     `json:"status"`
	CreatedBy     ActorRef        `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

// AmountScale is the number of decimal places every stored amount keeps.
const AmountScale = 4

// WithinScale reports whether d has no significant digits beyond AmountScale.
func WithinScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// ComputeProfit returns customerPrice - cost - taxes. The result may be negative.
func ComputeProfit(cost, customerPrice, taxes decimal.Decimal) decimal.Decimal {
	return customerPrice.Sub(cost).Sub(taxes)
}

// RecomputeProfit refreshes the derived profit from the current price inputs.
func (o *Order) RecomputeProfit() {
	o.Profit = ComputeProfit(o.Cost, o.CustomerPrice, o.Taxes)
}

// IsCompleted reports whether the order has already accrued into a period.
func (o Order) IsCompleted() bool {
	return o.Status == OrderCompleted
}

// OrderFilter narrows ListOrders.
type OrderFilter struct {
	Status    *OrderStatus
	CreatedBy *ActorRef
	Limit     int
	Offset    int
}

// OrderTotals aggregates completed orders for the balance projection.
type OrderTotals struct {
	Profit  decimal.Decimal
	Revenue decimal.Decimal
	Count   int
}

// Add folds one completed order into the totals. Revenue counts every unit.
func (t *OrderTotals) Add(o Order) {
	t.Profit = t.Profit.Add(o.Profit)
	t.Revenue = t.Revenue.Add(o.CustomerPrice.Mul(decimal.NewFromInt(int64(o.Quantity))))
	t.Count++
}
