package services

// ServiceContainer holds instances of all the application services.
// It is used by the handlers and by the admin CLI.
type ServiceContainer struct {
	Period   PeriodSvcFacade
	Order    OrderSvcFacade
	Budget   BudgetSvcFacade
	Rollover RolloverSvc
	Balance  BalanceSvc
}
