package dto

import (
	"time"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
)

// CoachResponse is the API representation of a coach.
type CoachResponse struct {
	CoachID         string    `json:"coachID"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	StripeAccountID *string   `json:"stripeAccountID,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToCoachResponse converts a domain coach to its API representation.
func ToCoachResponse(c *domain.Coach) CoachResponse {
	return CoachResponse{
		CoachID:         c.CoachID,
		Name:            c.Name,
		Email:           c.Email,
		StripeAccountID: c.StripeAccountID,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}
}

// ToCoachResponses converts a slice of domain coaches.
func ToCoachResponses(coaches []domain.Coach) []CoachResponse {
	responses := make([]CoachResponse, len(coaches))
	for i := range coaches {
		responses[i] = ToCoachResponse(&coaches[i])
	}
	return responses
}
