package domain

import "time"

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	// Earning is money owed to a coach for a completed, paid session.
	Earning TransactionType = "EARNING"
	// Payout records a batch transfer of accumulated earnings to a coach.
	Payout TransactionType = "PAYOUT"
	// Reversal negates a previously recorded earning (e.g. a refund).
	Reversal TransactionType = "REVERSAL"
)

// EntryStatus is the lifecycle state of a ledger entry.
type EntryStatus string

const (
	Pending   EntryStatus = "PENDING"
	Completed EntryStatus = "COMPLETED"
	Reversed  EntryStatus = "REVERSED"
)

// LedgerEntry is a single accounting record of money owed to or paid to a
// coach. All amounts are integer minor-currency units (cents).
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	CoachID         string          `json:"coachID"`
	LearnerID       string          `json:"learnerID,omitempty"`
	TransactionType TransactionType `json:"transactionType"`
	GrossAmount     int64           `json:"grossAmount"`
	PlatformFee     int64           `json:"platformFee"`
	NetAmount       int64           `json:"netAmount"`
	CommissionBps   int             `json:"commissionBps"`
	Status          EntryStatus     `json:"status"`
	// TransferReference is the external transfer id once the entry has been
	// claimed by a payout batch; nil means the entry has not been paid out.
	TransferReference *string    `json:"transferReference,omitempty"`
	ProcessedAt       *time.Time `json:"processedAt,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	AuditFields
}

// IsPayable reports whether the entry can be claimed by a payout batch: a
// completed earning that no previous transfer has claimed.
func (e LedgerEntry) IsPayable() bool {
	return e.TransactionType == Earning &&
		e.Status == Completed &&
		e.TransferReference == nil
}
