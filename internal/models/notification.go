package models

import "time"

// Notification types accepted by the store.
const (
	NotificationMessage      = "message"
	NotificationGroupMessage = "group_message"
	NotificationEventInvite  = "event_invite"
	NotificationEventUpdate  = "event_update"
	NotificationNewEvent     = "new_event"
	NotificationEvent        = "event"
)

// Notification is a typed per-recipient event record. Records are created in
// bulk by producers, mutated only to flip IsRead, and never deleted.
type Notification struct {
	ID             string    `db:"id" json:"id"`
	RecipientID    string    `db:"recipient_id" json:"recipient_id"`
	SenderID       string    `db:"sender_id" json:"sender_id"`
	SenderUsername string    `db:"sender_username" json:"sender_username,omitempty"`
	Type           string    `db:"type" json:"type"`
	Message        string    `db:"message" json:"message"`
	Link           string    `db:"link" json:"link"`
	IsRead         bool      `db:"is_read" json:"is_read"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
