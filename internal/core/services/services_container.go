package services

import (
	portsrepo "github.com/lingueefy/coach-payout-service/internal/core/ports/repositories"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
	"github.com/lingueefy/coach-payout-service/internal/utils"
	"github.com/lingueefy/coach-payout-service/pkg/config"
	"github.com/lingueefy/coach-payout-service/pkg/resilience"
)

// NewServiceContainer wires every service facade with its dependencies.
func NewServiceContainer(
	cfg *config.Config,
	repos *portsrepo.RepositoryProvider,
	gateway portssvc.TransferGateway,
	analytics *utils.PosthogClientWrapper,
	retryPolicy resilience.Policy,
) *portssvc.ServiceContainer {
	notifier := NewPayoutNotifier(repos.NotificationRepo, analytics)

	return &portssvc.ServiceContainer{
		Ledger: NewLedgerService(repos.LedgerRepo, repos.CoachRepo),
		Coach:  NewCoachService(repos.CoachRepo),
		Payout: NewPayoutService(
			repos.LedgerRepo,
			repos.CoachRepo,
			gateway,
			notifier,
			WithMinPayout(cfg.MinPayoutCents),
			WithCurrency(cfg.PayoutCurrency),
			WithRetryPolicy(retryPolicy),
		),
		Notifier: notifier,
		Auth:     NewAuthService(cfg),
	}
}
