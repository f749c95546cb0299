package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/lingueefy/coach-payout-service/internal/apperrors"
	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portsrepo "github.com/lingueefy/coach-payout-service/internal/core/ports/repositories"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
	"github.com/lingueefy/coach-payout-service/internal/dto"
	"github.com/lingueefy/coach-payout-service/internal/middleware"
	"github.com/lingueefy/coach-payout-service/internal/platform/metrics"
	"github.com/lingueefy/coach-payout-service/internal/utils"
	"github.com/lingueefy/coach-payout-service/pkg/resilience"
)

// MinPayoutCents is the default minimum payout threshold ($10.00 CAD).
const MinPayoutCents int64 = 1000

const defaultCurrency = "cad"

// systemUserID is recorded as the actor on ledger rows written by the
// reconciliation flow itself.
const systemUserID = "system"

// payoutService reconciles accumulated coach earnings into external transfers.
type payoutService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	coachRepo   portsrepo.CoachRepositoryFacade
	gateway     portssvc.TransferGateway
	notifier    portssvc.PayoutNotifierSvcFacade
	minPayout   int64
	currency    string
	retryPolicy resilience.Policy
}

// PayoutServiceOption configures the payout service.
type PayoutServiceOption func(*payoutService)

// WithMinPayout overrides the minimum payout threshold (cents).
func WithMinPayout(cents int64) PayoutServiceOption {
	return func(s *payoutService) { s.minPayout = cents }
}

// WithCurrency overrides the payout currency (ISO 4217, lowercase).
func WithCurrency(currency string) PayoutServiceOption {
	return func(s *payoutService) {
		if currency != "" {
			s.currency = currency
		}
	}
}

// WithRetryPolicy overrides the retry profile used for gateway eligibility
// lookups. The transfer request itself is never retried.
func WithRetryPolicy(policy resilience.Policy) PayoutServiceOption {
	return func(s *payoutService) { s.retryPolicy = policy }
}

// NewPayoutService creates a new PayoutService.
func NewPayoutService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	coachRepo portsrepo.CoachRepositoryFacade,
	gateway portssvc.TransferGateway,
	notifier portssvc.PayoutNotifierSvcFacade,
	opts ...PayoutServiceOption,
) portssvc.PayoutSvcFacade {
	s := &payoutService{
		ledgerRepo:  ledgerRepo,
		coachRepo:   coachRepo,
		gateway:     gateway,
		notifier:    notifier,
		minPayout:   MinPayoutCents,
		currency:    defaultCurrency,
		retryPolicy: resilience.PaymentPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure payoutService implements the portssvc.PayoutSvcFacade interface
var _ portssvc.PayoutSvcFacade = (*payoutService)(nil)

// GetPendingPayouts returns every coach whose payable earnings meet the
// minimum payout threshold. Read-only.
func (s *payoutService) GetPendingPayouts(ctx context.Context) ([]domain.PayoutSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	summaries, err := s.ledgerRepo.GetPendingPayoutSummaries(ctx, s.minPayout)
	if err != nil {
		logger.Error("Failed to aggregate pending payouts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate pending payouts: %w", err)
	}

	return summaries, nil
}

// ProcessCoachPayout attempts a single coach's payout. Every outcome,
// including precondition skips and gateway failures, is reported in the
// result so one coach's failure can never abort a batch run.
func (s *payoutService) ProcessCoachPayout(ctx context.Context, coachID string) domain.PayoutResult {
	result := s.processCoachPayout(ctx, coachID)

	metrics.PayoutResults.WithLabelValues(string(result.Status)).Inc()
	if result.Status == domain.PayoutSuccess {
		metrics.PayoutAmountCents.Add(float64(result.Amount))
	}
	return result
}

func (s *payoutService) processCoachPayout(ctx context.Context, coachID string) domain.PayoutResult {
	logger := middleware.GetLoggerFromCtx(ctx)

	// 1. Resolve the coach.
	coach, err := s.coachRepo.FindCoachByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return failed(coachID, "", 0, "coach not found")
		}
		logger.Error("Failed to load coach for payout", slog.String("coach_id", coachID), slog.String("error", err.Error()))
		return failed(coachID, "", 0, "failed to load coach")
	}

	// 2. Destination account on file.
	if !coach.HasPayoutDestination() {
		return skipped(coach, 0, "no Stripe Connect account")
	}

	// 3. Pending payable entries.
	entries, err := s.ledgerRepo.FindPendingEntriesByCoach(ctx, coachID)
	if err != nil {
		logger.Error("Failed to load pending entries", slog.String("coach_id", coachID), slog.String("error", err.Error()))
		return failed(coachID, coach.Name, 0, "failed to load pending entries")
	}
	if len(entries) == 0 {
		return skipped(coach, 0, "no pending entries")
	}

	var total int64
	entryIDs := make([]string, len(entries))
	for i, entry := range entries {
		total += entry.NetAmount
		entryIDs[i] = entry.EntryID
	}

	// 4. Minimum threshold.
	if total < s.minPayout {
		return skipped(coach, total, fmt.Sprintf("below minimum threshold ($%s)", utils.FormatCents(s.minPayout)))
	}

	// 5. Live gateway eligibility check; eligibility can change between runs
	// so it is never cached. This read is safe to retry.
	account, err := resilience.DoWithObserver(ctx, s.retryPolicy,
		func(ctx context.Context) (*domain.ConnectAccount, error) {
			return s.gateway.RetrieveAccount(ctx, *coach.StripeAccountID)
		},
		func(retry int, err error, delay time.Duration) {
			metrics.RetryAttempts.WithLabelValues(s.retryPolicy.Label).Inc()
			logger.Warn("Retrying gateway account lookup",
				slog.Int("retry", retry),
				slog.Duration("delay", delay),
				slog.String("error", err.Error()),
			)
		})
	if err != nil {
		logger.Warn("Unable to verify Stripe Connect account", slog.String("coach_id", coachID), slog.String("error", err.Error()))
		return failed(coachID, coach.Name, total, "unable to verify Stripe Connect account")
	}
	if !account.PayoutsEnabled {
		return skipped(coach, total, "Stripe payouts not enabled for this account")
	}

	// 6. Request the transfer. A single attempt only: once the request is in
	// flight there is no safe way to undo it, and an automatic retry could
	// move money twice. A failed run leaves the entries payable for the next one.
	transfer, err := s.gateway.CreateTransfer(ctx, portssvc.TransferRequest{
		Amount:      total,
		Currency:    s.currency,
		Destination: *coach.StripeAccountID,
		Description: fmt.Sprintf("Coach payout - %d session(s)", len(entries)),
		Metadata: map[string]string{
			"coach_id":    coach.CoachID,
			"coach_name":  coach.Name,
			"entry_count": strconv.Itoa(len(entries)),
			"platform":    "lingueefy",
		},
	})
	if err != nil {
		logger.Error("Transfer request failed", slog.String("coach_id", coachID), slog.String("error", err.Error()))
		return failed(coachID, coach.Name, total, err.Error())
	}

	logger.Info("Created transfer",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("coach_id", coachID),
		slog.Int64("amount_cents", total),
	)

	// 7. Claim every entry and record the batch atomically.
	now := time.Now().UTC()
	payoutEntry := domain.LedgerEntry{
		EntryID:           uuid.NewString(),
		CoachID:           coach.CoachID,
		TransactionType:   domain.Payout,
		GrossAmount:       total,
		PlatformFee:       0,
		NetAmount:         total,
		Status:            domain.Completed,
		TransferReference: &transfer.TransferID,
		ProcessedAt:       &now,
		Notes:             fmt.Sprintf("Automated payout of %d session(s) - $%s CAD", len(entries), utils.FormatCents(total)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     systemUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: systemUserID,
		},
	}
	if err := s.ledgerRepo.ClaimEntriesForTransfer(ctx, entryIDs, transfer.TransferID, now, payoutEntry); err != nil {
		// The transfer exists but the ledger was not updated; this needs
		// operator attention before the next run re-reads the same entries.
		logger.Error("Transfer created but ledger claim failed",
			slog.String("transfer_id", transfer.TransferID),
			slog.String("coach_id", coachID),
			slog.String("error", err.Error()),
		)
		return failed(coachID, coach.Name, total, fmt.Sprintf("transfer %s created but ledger update failed", transfer.TransferID))
	}

	result := domain.PayoutResult{
		CoachID:    coach.CoachID,
		CoachName:  coach.Name,
		Amount:     total,
		TransferID: &transfer.TransferID,
		Status:     domain.PayoutSuccess,
	}

	// 8. Best-effort notification; never escalated into the payout result.
	if s.notifier != nil {
		s.notifier.NotifyPayoutProcessed(ctx, *coach, result)
	}

	return result
}

// ProcessAllPendingPayouts processes every eligible coach sequentially so the
// gateway is not flooded and per-coach failures stay isolated.
func (s *payoutService) ProcessAllPendingPayouts(ctx context.Context) (*domain.BatchPayoutResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	metrics.PayoutRuns.WithLabelValues("batch").Inc()

	pending, err := s.GetPendingPayouts(ctx)
	if err != nil {
		return nil, err
	}

	batch := &domain.BatchPayoutResult{
		Results: make([]domain.PayoutResult, 0, len(pending)),
	}
	for _, summary := range pending {
		result := s.ProcessCoachPayout(ctx, summary.CoachID)
		batch.Results = append(batch.Results, result)
		if result.Status == domain.PayoutSuccess {
			batch.TotalProcessed++
			batch.TotalAmount += result.Amount
		}
	}

	logger.Info("Batch payout complete",
		slog.Int("processed", batch.TotalProcessed),
		slog.Int("considered", len(pending)),
		slog.String("total_amount", utils.FormatCents(batch.TotalAmount)),
	)

	return batch, nil
}

// GetPayoutHistory returns past payout batches, newest first.
func (s *payoutService) GetPayoutHistory(ctx context.Context, params dto.PayoutHistoryParams) (*dto.PayoutHistoryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	payouts, nextToken, err := s.ledgerRepo.ListPayouts(ctx, params.CoachID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list payout history", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve payout history: %w", err)
	}

	return &dto.PayoutHistoryResponse{
		Payouts:   dto.ToLedgerEntryResponses(payouts),
		NextToken: nextToken,
	}, nil
}

func skipped(coach *domain.Coach, amount int64, reason string) domain.PayoutResult {
	return domain.PayoutResult{
		CoachID:   coach.CoachID,
		CoachName: coach.Name,
		Amount:    amount,
		Status:    domain.PayoutSkipped,
		Reason:    reason,
	}
}

func failed(coachID, coachName string, amount int64, reason string) domain.PayoutResult {
	return domain.PayoutResult{
		CoachID:   coachID,
		CoachName: coachName,
		Amount:    amount,
		Status:    domain.PayoutFailed,
		Reason:    reason,
	}
}
