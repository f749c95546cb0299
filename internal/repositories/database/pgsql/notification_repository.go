package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portsrepo "github.com/lingueefy/coach-payout-service/internal/core/ports/repositories"
)

type PgxNotificationRepository struct {
	pool *pgxpool.Pool
}

// newPgxNotificationRepository creates a new repository for in-app notifications.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{pool: pool}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

// SaveNotification persists an in-app notification for a coach.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, coach_id, title, message, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	var link sql.NullString
	if notification.Link != "" {
		link = sql.NullString{String: notification.Link, Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		notification.NotificationID,
		notification.CoachID,
		notification.Title,
		notification.Message,
		link,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification %s: %w", notification.NotificationID, err)
	}
	return nil
}
