package services

// ServiceContainer bundles all service facades for dependency injection into
// the HTTP layer.
type ServiceContainer struct {
	Ledger   LedgerSvcFacade
	Coach    CoachSvcFacade
	Payout   PayoutSvcFacade
	Notifier PayoutNotifierSvcFacade
	Auth     AuthSvcFacade
}
