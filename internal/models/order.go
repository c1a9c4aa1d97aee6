package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the persisted row of the orders table.
type Order struct {
	OrderID       string          `db:"order_id"`
	Name          string          `db:"name"`
	Quantity      int             `db:"quantity"`
	Cost          decimal.Decimal `db:"cost"`
	CustomerPrice decimal.Decimal `db:"customer_price"`
	Taxes         decimal.Decimal `db:"taxes"`
	Profit        decimal.Decimal `db:"profit"`
	Status        string          `db:"status"`
	CreatedBy     string          `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
	CompletedAt   *time.Time      `db:"completed_at"`
}
