package repositories

// RepositoryProvider bundles all repository facades for dependency injection.
type RepositoryProvider struct {
	LedgerRepo       LedgerRepositoryFacade
	CoachRepo        CoachRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
}
