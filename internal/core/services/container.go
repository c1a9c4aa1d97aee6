package services

import (
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/capital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Every service resolves the current period through the same clock.
func NewServiceContainer(clock domain.Clock, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Period = NewPeriodService(clock, repos.TxManager, repos.PeriodRepo)
	container.Order = NewOrderService(clock, repos.TxManager, repos.OrderRepo)
	container.Budget = NewBudgetService(clock, repos.TxManager, repos.EntryRepo)
	container.Rollover = NewRolloverService(clock, repos.TxManager)
	container.Balance = NewBalanceService(clock, container.Period, repos.PeriodRepo, repos.OrderRepo)

	return container
}
