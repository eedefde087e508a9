package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campus-connect/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// GroupMessageRepository defines interactions for group messages.
type GroupMessageRepository interface {
	CreateGroupMessage(ctx context.Context, groupID, senderID, text string) (models.GroupMessage, error)
	ListGroupMessages(ctx context.Context, groupID string) ([]models.GroupMessage, error)
	GetGroupMessage(ctx context.Context, messageID string) (models.GroupMessage, error)
}

// GroupMessageRepo is a sqlx-backed implementation.
type GroupMessageRepo struct {
	db *sqlx.DB
}

// NewGroupMessageRepo constructs a GroupMessageRepo.
func NewGroupMessageRepo(db *sqlx.DB) *GroupMessageRepo {
	return &GroupMessageRepo{db: db}
}

// CreateGroupMessage persists a group message, then re-reads it with the
// sender identity resolved. Fan-out consumers always receive the stored,
// identity-resolved record rather than the raw client payload.
func (r *GroupMessageRepo) CreateGroupMessage(ctx context.Context, groupID, senderID, text string) (models.GroupMessage, error) {
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, `INSERT INTO group_messages (id, group_id, sender_id, text) VALUES ($1, $2, $3, $4)`,
		id, groupID, senderID, text); err != nil {
		return models.GroupMessage{}, err
	}
	return r.GetGroupMessage(ctx, id)
}

// ListGroupMessages returns the group history in insertion order.
func (r *GroupMessageRepo) ListGroupMessages(ctx context.Context, groupID string) ([]models.GroupMessage, error) {
	var msgs []models.GroupMessage
	err := r.db.SelectContext(ctx, &msgs, `SELECT gm.id, gm.group_id, gm.sender_id, COALESCE(u.username, '') AS sender_username, gm.text, gm.created_at
        FROM group_messages gm LEFT JOIN users u ON u.id = gm.sender_id
        WHERE gm.group_id=$1 ORDER BY gm.seq ASC`, groupID)
	return msgs, err
}

// GetGroupMessage fetches a single message with sender identity resolved.
func (r *GroupMessageRepo) GetGroupMessage(ctx context.Context, messageID string) (models.GroupMessage, error) {
	var msg models.GroupMessage
	err := r.db.GetContext(ctx, &msg, `SELECT gm.id, gm.group_id, gm.sender_id, COALESCE(u.username, '') AS sender_username, gm.text, gm.created_at
        FROM group_messages gm LEFT JOIN users u ON u.id = gm.sender_id
        WHERE gm.id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GroupMessage{}, ErrMessageNotFound
	}
	return msg, err
}
