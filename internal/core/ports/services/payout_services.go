package services

import (
	"context"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	"github.com/lingueefy/coach-payout-service/internal/dto"
)

// PayoutSvcFacade reconciles accumulated coach earnings into external
// transfers, exactly once per ledger entry.
type PayoutSvcFacade interface {
	// GetPendingPayouts returns every coach whose payable earnings meet the
	// minimum payout threshold. Read-only.
	GetPendingPayouts(ctx context.Context) ([]domain.PayoutSummary, error)

	// ProcessCoachPayout attempts a single coach's payout. All outcomes,
	// including precondition skips and gateway failures, are reported in the
	// result rather than as errors so batch runs can aggregate them.
	ProcessCoachPayout(ctx context.Context, coachID string) domain.PayoutResult

	// ProcessAllPendingPayouts processes every eligible coach sequentially,
	// isolating per-coach failures.
	ProcessAllPendingPayouts(ctx context.Context) (*domain.BatchPayoutResult, error)

	// GetPayoutHistory returns past payout batches, newest first.
	GetPayoutHistory(ctx context.Context, params dto.PayoutHistoryParams) (*dto.PayoutHistoryResponse, error)
}
