package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingueefy/coach-payout-service/internal/apperrors"
	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portsrepo "github.com/lingueefy/coach-payout-service/internal/core/ports/repositories"
	"github.com/lingueefy/coach-payout-service/internal/models"
	"github.com/lingueefy/coach-payout-service/internal/utils/mapping"
	"github.com/lingueefy/coach-payout-service/internal/utils/pagination"
)

const ledgerColumns = `entry_id, coach_id, learner_id, transaction_type, gross_amount, platform_fee, net_amount, commission_bps, status, transfer_reference, processed_at, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for payout ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// rowScanner abstracts pgx.Row and pgx.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLedgerEntry(row rowScanner) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var learnerID, notes sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.CoachID,
		&learnerID,
		&m.TransactionType,
		&m.GrossAmount,
		&m.PlatformFee,
		&m.NetAmount,
		&m.CommissionBps,
		&m.Status,
		&m.TransferReference,
		&m.ProcessedAt,
		&notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	m.LearnerID = learnerID.String
	m.Notes = notes.String
	return m, nil
}

func collectLedgerEntries(rows pgx.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()
	var entries []models.LedgerEntry
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, m)
	}
	return entries, rows.Err()
}

// execer is satisfied by both pgx.Tx and *pgxpool.Pool, so the insert helper
// can run inside or outside an explicit transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertLedgerEntry(ctx context.Context, db execer, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)

	var learnerID sql.NullString
	if m.LearnerID != "" {
		learnerID = sql.NullString{String: m.LearnerID, Valid: true}
	}

	query := `
		INSERT INTO payout_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := db.Exec(ctx, query,
		m.EntryID,
		m.CoachID,
		learnerID,
		m.TransactionType,
		m.GrossAmount,
		m.PlatformFee,
		m.NetAmount,
		m.CommissionBps,
		m.Status,
		m.TransferReference,
		m.ProcessedAt,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: ledger entry %s", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}

// GetPendingPayoutSummaries aggregates payable earnings per active coach and
// keeps only coaches at or above the minimum payout threshold.
func (r *PgxLedgerRepository) GetPendingPayoutSummaries(ctx context.Context, minPayoutCents int64) ([]domain.PayoutSummary, error) {
	query := `
		SELECT
			c.coach_id,
			c.name,
			c.email,
			c.stripe_account_id,
			COALESCE(SUM(l.net_amount), 0) AS pending_amount,
			COUNT(l.entry_id) AS pending_entries,
			(
				SELECT MAX(p.processed_at)
				FROM payout_ledger p
				WHERE p.coach_id = c.coach_id AND p.transaction_type = 'PAYOUT'
			) AS last_payout_at
		FROM coaches c
		JOIN payout_ledger l ON l.coach_id = c.coach_id
		WHERE c.is_active = TRUE
		  AND l.transaction_type = 'EARNING'
		  AND l.status = 'COMPLETED'
		  AND l.transfer_reference IS NULL
		GROUP BY c.coach_id, c.name, c.email, c.stripe_account_id
		HAVING SUM(l.net_amount) >= $1
		ORDER BY pending_amount DESC;
	`
	rows, err := r.Pool.Query(ctx, query, minPayoutCents)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending payout summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.PayoutSummary
	for rows.Next() {
		var s domain.PayoutSummary
		var stripeAccountID sql.NullString
		if err := rows.Scan(
			&s.CoachID,
			&s.CoachName,
			&s.CoachEmail,
			&stripeAccountID,
			&s.PendingAmount,
			&s.PendingEntries,
			&s.LastPayoutAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payout summary: %w", err)
		}
		s.StripeAccountID = stripeAccountID.String
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// FindPendingEntriesByCoach retrieves all payable entries for a coach, oldest
// first so a payout batch claims earnings in the order they accrued.
func (r *PgxLedgerRepository) FindPendingEntriesByCoach(ctx context.Context, coachID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM payout_ledger
		WHERE coach_id = $1
		  AND transaction_type = 'EARNING'
		  AND status = 'COMPLETED'
		  AND transfer_reference IS NULL
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending entries for coach %s: %w", coachID, err)
	}

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// FindEntryByID retrieves a single ledger entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM payout_ledger WHERE entry_id = $1;`

	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ledger entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query ledger entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// ListEntriesByCoach retrieves a coach's entries, newest first, with
// token-based pagination.
func (r *PgxLedgerRepository) ListEntriesByCoach(ctx context.Context, coachID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := []any{coachID, limit + 1}
	query := `
		SELECT ` + ledgerColumns + `
		FROM payout_ledger
		WHERE coach_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		cursor, _, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND created_at < $3`
		args = append(args, cursor)
	}
	query += ` ORDER BY created_at DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query ledger entries for coach %s: %w", coachID, err)
	}

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, nil, err
	}
	entries, token := paginate(entries, limit)
	return mapping.ToDomainLedgerEntrySlice(entries), token, nil
}

// ListPayouts retrieves PAYOUT entries, optionally filtered by coach, newest
// first, with token-based pagination.
func (r *PgxLedgerRepository) ListPayouts(ctx context.Context, coachID *string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM payout_ledger
		WHERE transaction_type = 'PAYOUT'
	`
	args := []any{limit + 1}
	argPos := 2
	if coachID != nil && *coachID != "" {
		query += fmt.Sprintf(` AND coach_id = $%d`, argPos)
		args = append(args, *coachID)
		argPos++
	}
	if nextToken != nil && *nextToken != "" {
		cursor, _, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(` AND created_at < $%d`, argPos)
		args = append(args, cursor)
	}
	query += ` ORDER BY created_at DESC LIMIT $1;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query payouts: %w", err)
	}

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, nil, err
	}
	entries, token := paginate(entries, limit)
	return mapping.ToDomainLedgerEntrySlice(entries), token, nil
}

// paginate trims an over-fetched page to limit and produces the next-page
// token from the last visible row.
func paginate(entries []models.LedgerEntry, limit int) ([]models.LedgerEntry, *string) {
	if len(entries) <= limit {
		return entries, nil
	}
	entries = entries[:limit]
	last := entries[len(entries)-1]
	token := pagination.EncodeToken(last.CreatedAt, last.CreatedAt)
	return entries, &token
}

// SaveEntry persists a new ledger entry.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return insertLedgerEntry(ctx, r.Pool, entry)
}

// ClaimEntriesForTransfer attaches the transfer reference to every listed
// entry and inserts the batch's PAYOUT entry in a single database
// transaction. The conditional UPDATE only touches rows that are still
// unclaimed; if a concurrent run got there first the affected-row count comes
// up short and the whole claim rolls back with ErrConflict.
func (r *PgxLedgerRepository) ClaimEntriesForTransfer(ctx context.Context, entryIDs []string, transferRef string, processedAt time.Time, payoutEntry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	claimQuery := `
		UPDATE payout_ledger
		SET transfer_reference = $1,
			processed_at = $2,
			last_updated_at = $2,
			last_updated_by = $3
		WHERE entry_id = ANY($4)
		  AND transaction_type = 'EARNING'
		  AND status = 'COMPLETED'
		  AND transfer_reference IS NULL;
	`
	tag, err := tx.Exec(ctx, claimQuery, transferRef, processedAt, payoutEntry.CreatedBy, entryIDs)
	if err != nil {
		return fmt.Errorf("failed to claim ledger entries for transfer %s: %w", transferRef, err)
	}
	if tag.RowsAffected() != int64(len(entryIDs)) {
		return fmt.Errorf("%w: claimed %d of %d entries for transfer %s, another run got there first",
			apperrors.ErrConflict, tag.RowsAffected(), len(entryIDs), transferRef)
	}

	if err := insertLedgerEntry(ctx, tx, payoutEntry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// MarkEntryReversed marks an earning REVERSED and inserts its REVERSAL entry
// in a single database transaction. The conditional UPDATE refuses entries
// that were claimed or reversed since the caller last looked.
func (r *PgxLedgerRepository) MarkEntryReversed(ctx context.Context, entryID string, reversal domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE payout_ledger
		SET status = 'REVERSED',
			last_updated_at = $1,
			last_updated_by = $2
		WHERE entry_id = $3
		  AND transaction_type = 'EARNING'
		  AND status = 'COMPLETED'
		  AND transfer_reference IS NULL;
	`
	tag, err := tx.Exec(ctx, updateQuery, reversal.CreatedAt, reversal.CreatedBy, entryID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s reversed: %w", entryID, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("%w: entry %s is no longer reversible", apperrors.ErrConflict, entryID)
	}

	if err := insertLedgerEntry(ctx, tx, reversal); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
