package repositories

import (
	"context"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
)

// CoachReader defines read operations for the coach directory.
type CoachReader interface {
	// FindCoachByID retrieves a coach by their unique identifier.
	FindCoachByID(ctx context.Context, coachID string) (*domain.Coach, error)

	// ListActiveCoaches retrieves all active coaches.
	ListActiveCoaches(ctx context.Context) ([]domain.Coach, error)
}

// CoachRepositoryFacade combines all coach repository interfaces. The payout
// service only reads the directory; coach onboarding lives elsewhere.
type CoachRepositoryFacade interface {
	CoachReader
}
