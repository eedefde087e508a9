package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campus-connect/internal/models"
)

// MessageRepository defines interactions for direct messages. Messages are
// keyed by conversation id and immutable once stored.
type MessageRepository interface {
	Append(ctx context.Context, conversationID, senderID, text string) (models.Message, error)
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Append stores a message with a server-assigned timestamp.
func (r *MessageRepo) Append(ctx context.Context, conversationID, senderID, text string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (id, conversation_id, sender_id, text) VALUES ($1, $2, $3, $4)
        RETURNING id, conversation_id, sender_id, text, created_at`,
		uuid.NewString(), conversationID, senderID, text).
		StructScan(&msg)
	return msg, err
}

// ListByConversation returns the full history in insertion order. There is no
// pagination or size bound; history grows without limit.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, `SELECT id, conversation_id, sender_id, text, created_at FROM messages
        WHERE conversation_id=$1 ORDER BY seq ASC`, conversationID)
	return msgs, err
}
