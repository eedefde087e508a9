package models

import "time"

// Message is a direct message between two users. The conversation id is the
// canonical "{smallerId}_{largerId}" pairing key; no conversation row exists.
// Messages are immutable once stored.
type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	SenderID       string    `db:"sender_id" json:"sender_id"`
	Text           string    `db:"text" json:"text"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
