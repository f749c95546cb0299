package domain

import "time"

// PayoutStatus is the per-coach outcome of a reconciliation run.
type PayoutStatus string

const (
	PayoutSuccess PayoutStatus = "success"
	PayoutSkipped PayoutStatus = "skipped"
	PayoutFailed  PayoutStatus = "failed"
)

// PayoutSummary describes a coach's accumulated payable earnings.
type PayoutSummary struct {
	CoachID         string     `json:"coachID"`
	CoachName       string     `json:"coachName"`
	CoachEmail      string     `json:"coachEmail"`
	StripeAccountID string     `json:"stripeAccountID"`
	PendingAmount   int64      `json:"pendingAmount"` // cents
	PendingEntries  int        `json:"pendingEntries"`
	LastPayoutAt    *time.Time `json:"lastPayoutAt,omitempty"`
}

// PayoutResult is the outcome of processing a single coach's payout.
// Precondition failures (no account, below threshold, payouts disabled) are
// routine skipped outcomes, not errors.
type PayoutResult struct {
	CoachID    string       `json:"coachID"`
	CoachName  string       `json:"coachName"`
	Amount     int64        `json:"amount"` // cents
	TransferID *string      `json:"transferID,omitempty"`
	Status     PayoutStatus `json:"status"`
	Reason     string       `json:"reason,omitempty"`
}

// BatchPayoutResult aggregates a full reconciliation run. One coach's failure
// never aborts the remaining coaches, so Results always covers every coach
// that was considered.
type BatchPayoutResult struct {
	TotalProcessed int            `json:"totalProcessed"`
	TotalAmount    int64          `json:"totalAmount"` // cents
	Results        []PayoutResult `json:"results"`
}
