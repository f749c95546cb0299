package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingueefy/coach-payout-service/internal/apperrors"
	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portsrepo "github.com/lingueefy/coach-payout-service/internal/core/ports/repositories"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
	"github.com/lingueefy/coach-payout-service/internal/dto"
	"github.com/lingueefy/coach-payout-service/internal/middleware"
	"github.com/lingueefy/coach-payout-service/internal/utils"
)

type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	coachRepo  portsrepo.CoachRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, coachRepo portsrepo.CoachRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		coachRepo:  coachRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RecordEarning records a coach earning for a completed paid session. The
// gross amount is split into platform fee and net per the commission basis
// points; the net amount is what accumulates toward the coach's next payout.
func (s *ledgerService) RecordEarning(ctx context.Context, req dto.RecordEarningRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.GrossAmount <= 0 {
		return nil, fmt.Errorf("%w: gross amount must be positive", apperrors.ErrValidation)
	}
	if req.CommissionBps < 0 || req.CommissionBps > 10000 {
		return nil, fmt.Errorf("%w: commission basis points must be between 0 and 10000", apperrors.ErrValidation)
	}

	coach, err := s.coachRepo.FindCoachByID(ctx, req.CoachID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("coach %s not found", req.CoachID))
		}
		logger.Error("Failed to load coach for earning", slog.String("coach_id", req.CoachID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load coach: %w", err)
	}
	if !coach.IsActive {
		return nil, fmt.Errorf("%w: coach %s is not active", apperrors.ErrValidation, req.CoachID)
	}

	fee := utils.PlatformFeeFromBps(req.GrossAmount, req.CommissionBps)
	now := time.Now().UTC()

	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		CoachID:         req.CoachID,
		LearnerID:       req.LearnerID,
		TransactionType: domain.Earning,
		GrossAmount:     req.GrossAmount,
		PlatformFee:     fee,
		NetAmount:       req.GrossAmount - fee,
		CommissionBps:   req.CommissionBps,
		Status:          domain.Completed,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save earning", slog.String("coach_id", req.CoachID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save earning: %w", err)
	}

	logger.Info("Recorded earning",
		slog.String("entry_id", entry.EntryID),
		slog.String("coach_id", entry.CoachID),
		slog.Int64("net_amount", entry.NetAmount),
	)

	return &entry, nil
}

// ReverseEntry reverses a completed, unclaimed earning, e.g. after a learner
// refund. Earnings already claimed by a payout cannot be reversed; that money
// has left the platform.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("ledger entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to load ledger entry: %w", err)
	}

	if entry.TransactionType != domain.Earning {
		return nil, fmt.Errorf("%w: only earnings can be reversed", apperrors.ErrValidation)
	}
	if entry.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: entry %s is already reversed", apperrors.ErrDuplicate, entryID)
	}
	if entry.TransferReference != nil {
		return nil, fmt.Errorf("%w: entry %s was already paid out in transfer %s", apperrors.ErrConflict, entryID, *entry.TransferReference)
	}

	now := time.Now().UTC()
	reversal := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		CoachID:         entry.CoachID,
		LearnerID:       entry.LearnerID,
		TransactionType: domain.Reversal,
		GrossAmount:     -entry.GrossAmount,
		PlatformFee:     -entry.PlatformFee,
		NetAmount:       -entry.NetAmount,
		CommissionBps:   entry.CommissionBps,
		Status:          domain.Completed,
		Notes:           req.Reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.ledgerRepo.MarkEntryReversed(ctx, entryID, reversal); err != nil {
		logger.Error("Failed to reverse entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reverse entry: %w", err)
	}

	logger.Info("Reversed earning",
		slog.String("entry_id", entryID),
		slog.String("reversal_id", reversal.EntryID),
		slog.String("coach_id", entry.CoachID),
	)

	return &reversal, nil
}

// ListCoachEntries returns a coach's ledger entries, newest first, with
// token-based pagination.
func (s *ledgerService) ListCoachEntries(ctx context.Context, coachID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.coachRepo.FindCoachByID(ctx, coachID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("coach %s not found", coachID))
		}
		return nil, fmt.Errorf("failed to load coach: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByCoach(ctx, coachID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
