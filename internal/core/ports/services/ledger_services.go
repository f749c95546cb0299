package services

import (
	"context"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	"github.com/lingueefy/coach-payout-service/internal/dto"
)

// LedgerSvcFacade records coach earnings and reversals.
type LedgerSvcFacade interface {
	// RecordEarning records a coach earning for a completed paid session,
	// splitting the gross amount into platform fee and net per the commission
	// basis points.
	RecordEarning(ctx context.Context, req dto.RecordEarningRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// ReverseEntry reverses a completed, unclaimed earning (e.g. a refund),
	// excluding it from future payouts.
	ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.LedgerEntry, error)

	// ListCoachEntries returns a coach's ledger entries, newest first.
	ListCoachEntries(ctx context.Context, coachID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// CoachSvcFacade exposes the coach directory to the admin surface.
type CoachSvcFacade interface {
	// GetCoachByID retrieves a single coach.
	GetCoachByID(ctx context.Context, coachID string) (*domain.Coach, error)

	// ListCoaches retrieves all active coaches.
	ListCoaches(ctx context.Context) ([]domain.Coach, error)
}
