package models

import "time"

// Notification defines the notification model based on the 'notifications'
// table. Notifications are fire-and-forget rows created by controller
// actions and polled by the client.
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	Link      *string          `json:"link,omitempty" db:"link"` // optional deep link
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
