package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portsrepo "github.com/lingueefy/coach-payout-service/internal/core/ports/repositories"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
	"github.com/lingueefy/coach-payout-service/internal/middleware"
	"github.com/lingueefy/coach-payout-service/internal/utils"
)

// payoutNotifier records an in-app notification and an analytics event when a
// coach is paid. Both are best-effort: failures are logged and discarded so
// they never disturb a payout that has already happened.
type payoutNotifier struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	analytics        *utils.PosthogClientWrapper
}

// NewPayoutNotifier creates a new payout notifier.
func NewPayoutNotifier(notificationRepo portsrepo.NotificationRepositoryFacade, analytics *utils.PosthogClientWrapper) portssvc.PayoutNotifierSvcFacade {
	return &payoutNotifier{
		notificationRepo: notificationRepo,
		analytics:        analytics,
	}
}

// Ensure payoutNotifier implements the portssvc.PayoutNotifierSvcFacade interface
var _ portssvc.PayoutNotifierSvcFacade = (*payoutNotifier)(nil)

func (n *payoutNotifier) NotifyPayoutProcessed(ctx context.Context, coach domain.Coach, result domain.PayoutResult) {
	logger := middleware.GetLoggerFromCtx(ctx)

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		CoachID:        coach.CoachID,
		Title:          "Payout Processed",
		Message:        "Your payout of $" + utils.FormatCents(result.Amount) + " CAD has been sent to your bank account.",
		Link:           "/coach/dashboard",
		CreatedAt:      time.Now().UTC(),
	}
	if err := n.notificationRepo.SaveNotification(ctx, notification); err != nil {
		logger.Warn("Failed to save payout notification",
			slog.String("coach_id", coach.CoachID),
			slog.String("error", err.Error()),
		)
	}

	if n.analytics != nil && n.analytics.IsInitialized() {
		properties := map[string]any{
			"amount_cents": result.Amount,
			"currency":     "cad",
		}
		if result.TransferID != nil {
			properties["transfer_id"] = *result.TransferID
		}
		n.analytics.Enqueue(coach.CoachID, "payout_processed", properties)
	}
}
