package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lingueefy/coach-payout-service/internal/apperrors"
	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portsrepo "github.com/lingueefy/coach-payout-service/internal/core/ports/repositories"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
)

type coachService struct {
	coachRepo portsrepo.CoachRepositoryFacade
}

// NewCoachService creates a new CoachService.
func NewCoachService(coachRepo portsrepo.CoachRepositoryFacade) portssvc.CoachSvcFacade {
	return &coachService{coachRepo: coachRepo}
}

// Ensure coachService implements the portssvc.CoachSvcFacade interface
var _ portssvc.CoachSvcFacade = (*coachService)(nil)

func (s *coachService) GetCoachByID(ctx context.Context, coachID string) (*domain.Coach, error) {
	coach, err := s.coachRepo.FindCoachByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("coach %s not found", coachID))
		}
		return nil, fmt.Errorf("failed to load coach: %w", err)
	}
	return coach, nil
}

func (s *coachService) ListCoaches(ctx context.Context) ([]domain.Coach, error) {
	coaches, err := s.coachRepo.ListActiveCoaches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}
	return coaches, nil
}
