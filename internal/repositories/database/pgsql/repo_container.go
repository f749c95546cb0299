package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/lingueefy/coach-payout-service/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories against a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		LedgerRepo:       newPgxLedgerRepository(dbPool),
		CoachRepo:        newPgxCoachRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
