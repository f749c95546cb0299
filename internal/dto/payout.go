package dto

import (
	"github.com/lingueefy/coach-payout-service/internal/core/domain"
)

// PayoutHistoryParams filters and paginates past payout batches.
type PayoutHistoryParams struct {
	CoachID   *string `form:"coachID"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// PayoutHistoryResponse is a page of past payout batches.
type PayoutHistoryResponse struct {
	Payouts   []LedgerEntryResponse `json:"payouts"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// PendingPayoutsResponse lists coaches eligible for payout in the next run.
type PendingPayoutsResponse struct {
	Pending []domain.PayoutSummary `json:"pending"`
	// TotalPending is the summed pending amount across all eligible coaches, in cents.
	TotalPending int64 `json:"totalPending"`
}
