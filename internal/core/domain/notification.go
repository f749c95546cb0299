package domain

import "time"

// Notification is an in-app message delivered to a coach. Notifications are a
// best-effort side effect: a failure to record one never rolls back or fails
// the operation that produced it.
type Notification struct {
	NotificationID string    `json:"notificationID"`
	CoachID        string    `json:"coachID"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Link           string    `json:"link,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
