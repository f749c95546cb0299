package models

import "time"

// LedgerEntry is the persistence representation of a payout ledger row.
type LedgerEntry struct {
	EntryID           string     `db:"entry_id"`
	CoachID           string     `db:"coach_id"`
	LearnerID         string     `db:"learner_id"` // Nullable, empty for payouts/reversals
	TransactionType   string     `db:"transaction_type"`
	GrossAmount       int64      `db:"gross_amount"`
	PlatformFee       int64      `db:"platform_fee"`
	NetAmount         int64      `db:"net_amount"`
	CommissionBps     int        `db:"commission_bps"`
	Status            string     `db:"status"`
	TransferReference *string    `db:"transfer_reference"`
	ProcessedAt       *time.Time `db:"processed_at"`
	Notes             string     `db:"notes"`
	AuditFields
}

// AuditFields holds standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
