package repositories

import (
	"context"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
)

// NotificationWriter defines write operations for in-app notifications.
type NotificationWriter interface {
	// SaveNotification persists an in-app notification for a coach.
	SaveNotification(ctx context.Context, notification domain.Notification) error
}

// NotificationRepositoryFacade combines all notification repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationWriter
}
