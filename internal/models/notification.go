package models

import "time"

// Notification is the persistence representation of an in-app notification.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	CoachID        string    `db:"coach_id"`
	Title          string    `db:"title"`
	Message        string    `db:"message"`
	Link           string    `db:"link"`
	CreatedAt      time.Time `db:"created_at"`
}
