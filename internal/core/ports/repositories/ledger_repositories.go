package repositories

import (
	"context"
	"time"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
)

// LedgerReader defines read operations for payout ledger data.
type LedgerReader interface {
	// GetPendingPayoutSummaries aggregates payable earnings per coach and
	// returns only coaches whose pending total meets minPayoutCents.
	GetPendingPayoutSummaries(ctx context.Context, minPayoutCents int64) ([]domain.PayoutSummary, error)

	// FindPendingEntriesByCoach retrieves all payable entries for a coach:
	// completed earnings with no transfer reference.
	FindPendingEntriesByCoach(ctx context.Context, coachID string) ([]domain.LedgerEntry, error)

	// FindEntryByID retrieves a single ledger entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByCoach retrieves a paginated list of a coach's ledger entries
	// using token-based pagination. It returns the entries, a token for the
	// next page, and an error.
	ListEntriesByCoach(ctx context.Context, coachID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListPayouts retrieves a paginated list of PAYOUT entries, optionally
	// filtered by coach, newest first.
	ListPayouts(ctx context.Context, coachID *string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines write operations for payout ledger data.
type LedgerWriter interface {
	// SaveEntry persists a new ledger entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// ClaimEntriesForTransfer atomically attaches the transfer reference to
	// every listed entry and inserts the batch's PAYOUT entry within a single
	// database transaction. Entries already claimed by a concurrent run cause
	// the whole claim to fail with apperrors.ErrConflict and no mutation.
	ClaimEntriesForTransfer(ctx context.Context, entryIDs []string, transferRef string, processedAt time.Time, payoutEntry domain.LedgerEntry) error

	// MarkEntryReversed marks an earning REVERSED and inserts its REVERSAL
	// entry within a single database transaction.
	MarkEntryReversed(ctx context.Context, entryID string, reversal domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
