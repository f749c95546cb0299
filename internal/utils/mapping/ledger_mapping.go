// Package mapping converts between persistence models and core domain types.
package mapping

import (
	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	"github.com/lingueefy/coach-payout-service/internal/models"
)

// ToModelLedgerEntry converts a domain ledger entry to its persistence model.
func ToModelLedgerEntry(e domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
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
		AuditFields:       toModelAudit(e.AuditFields),
	}
}

// ToDomainLedgerEntry converts a persistence model to a domain ledger entry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:           m.EntryID,
		CoachID:           m.CoachID,
		LearnerID:         m.LearnerID,
		TransactionType:   domain.TransactionType(m.TransactionType),
		GrossAmount:       m.GrossAmount,
		PlatformFee:       m.PlatformFee,
		NetAmount:         m.NetAmount,
		CommissionBps:     m.CommissionBps,
		Status:            domain.EntryStatus(m.Status),
		TransferReference: m.TransferReference,
		ProcessedAt:       m.ProcessedAt,
		Notes:             m.Notes,
		AuditFields:       toDomainAudit(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of persistence models.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		entries[i] = ToDomainLedgerEntry(m)
	}
	return entries
}

// ToDomainCoach converts a persistence model to a domain coach.
func ToDomainCoach(m models.Coach) domain.Coach {
	return domain.Coach{
		CoachID:         m.CoachID,
		Name:            m.Name,
		Email:           m.Email,
		StripeAccountID: m.StripeAccountID,
		IsActive:        m.IsActive,
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}
