package dto

import (
	"time"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
)

// RecordEarningRequest records a coach earning for a completed paid session.
// Amounts are integer cents.
type RecordEarningRequest struct {
	CoachID       string `json:"coachID" binding:"required"`
	LearnerID     string `json:"learnerID" binding:"required"`
	GrossAmount   int64  `json:"grossAmount" binding:"required,gt=0"`
	CommissionBps int    `json:"commissionBps" binding:"gte=0,lte=10000"`
	Notes         string `json:"notes"`
}

// ReverseEntryRequest reverses a previously recorded earning.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams holds pagination parameters for listing ledger entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// LedgerEntryResponse is the API representation of a ledger entry.
type LedgerEntryResponse struct {
	EntryID           string     `json:"entryID"`
	CoachID           string     `json:"coachID"`
	LearnerID         string     `json:"learnerID,omitempty"`
	TransactionType   string     `json:"transactionType"`
	GrossAmount       int64      `json:"grossAmount"`
	PlatformFee       int64      `json:"platformFee"`
	NetAmount         int64      `json:"netAmount"`
	CommissionBps     int        `json:"commissionBps"`
	Status            string     `json:"status"`
	TransferReference *string    `json:"transferReference,omitempty"`
	ProcessedAt       *time.Time `json:"processedAt,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ListEntriesResponse is a page of ledger entries with a pagination token.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a domain ledger entry to its API representation.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:           e.EntryID,
		CoachID:           e.CoachID,
		LearnerID:         e.LearnerID,
		TransactionType:   string(e.TransactionType),
		GrossAmount:       e.GrossAmount,
		PlatformFee:       e.PlatformFee,
		NetAmount:         e.NetAmount,
		CommissionBps:     e.CommissionBps,
		Status:            string(e.Status),
		TransferReference: e.TransferReference,
		ProcessedAt:       e.ProcessedAt,
		Notes:             e.Notes,
		CreatedAt:         e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}
