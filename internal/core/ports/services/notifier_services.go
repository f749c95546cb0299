package services

import (
	"context"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
)

// PayoutNotifierSvcFacade delivers best-effort payout notifications. No error
// is returned: delivery failures are logged and discarded, never escalated
// into the payout result.
type PayoutNotifierSvcFacade interface {
	NotifyPayoutProcessed(ctx context.Context, coach domain.Coach, result domain.PayoutResult)
}
