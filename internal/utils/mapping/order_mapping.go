package mapping

import (
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:       d.OrderID,
		Name:          d.Name,
		Quantity:      d.Quantity,
		Cost:          d.Cost,
		CustomerPrice: d.CustomerPrice,
		Taxes:         d.Taxes,
		Profit:        d.Profit,
		Status:        string(d.Status),
		CreatedBy:     string(d.CreatedBy),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		CompletedAt:   d.CompletedAt,
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:       m.OrderID,
		Name:          m.Name,
		Quantity:      m.Quantity,
		Cost:          m.Cost,
		CustomerPrice: m.CustomerPrice,
		Taxes:         m.Taxes,
		Profit:        m.Profit,
		Status:        domain.OrderStatus(m.Status),
		CreatedBy:     domain.ActorRef(m.CreatedBy),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CompletedAt:   m.CompletedAt,
	}
}
