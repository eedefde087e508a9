package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campus-connect/internal/models"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrAlreadyMember = errors.New("user is already a member")
)

// GroupRepository abstracts group persistence and membership.
type GroupRepository interface {
	CreateGroup(ctx context.Context, group models.Group) (models.Group, error)
	GetGroup(ctx context.Context, groupID string) (models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	SearchGroups(ctx context.Context, query string) ([]models.Group, error)
	ListMembers(ctx context.Context, groupID string) ([]string, error)
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	ToggleJoin(ctx context.Context, groupID, userID string) (bool, error)
	AddMember(ctx context.Context, groupID, userID string) error
}

// GroupRepo is a sqlx implementation of GroupRepository.
type GroupRepo struct {
	db *sqlx.DB
}

// NewGroupRepo constructs a GroupRepo.
func NewGroupRepo(db *sqlx.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// CreateGroup creates a group and enrolls the creator atomically.
func (r *GroupRepo) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Group{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if err = tx.QueryRowxContext(ctx, `INSERT INTO groups (id, name, subject, description, created_by) VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, subject, description, created_by, created_at`,
		group.ID, group.Name, group.Subject, group.Description, group.CreatedBy).
		StructScan(&group); err != nil {
		return models.Group{}, err
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`, group.ID, group.CreatedBy); err != nil {
		return models.Group{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Group{}, err
	}
	group.Members = []string{group.CreatedBy}
	return group, nil
}

// GetGroup fetches a group with its member set.
func (r *GroupRepo) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	var group models.Group
	err := r.db.GetContext(ctx, &group, `SELECT id, name, subject, description, created_by, created_at FROM groups WHERE id=$1`, groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Group{}, ErrGroupNotFound
	}
	if err != nil {
		return models.Group{}, err
	}

	members, err := r.ListMembers(ctx, groupID)
	if err != nil {
		return models.Group{}, err
	}
	group.Members = members
	return group, nil
}

// ListGroups returns all groups, newest first.
func (r *GroupRepo) ListGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.SelectContext(ctx, &groups, `SELECT id, name, subject, description, created_by, created_at FROM groups ORDER BY created_at DESC`)
	return groups, err
}

// SearchGroups matches name or subject, case-insensitively.
func (r *GroupRepo) SearchGroups(ctx context.Context, query string) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.SelectContext(ctx, &groups, `SELECT id, name, subject, description, created_by, created_at FROM groups
        WHERE name ILIKE '%' || $1 || '%' OR subject ILIKE '%' || $1 || '%' ORDER BY created_at DESC`, query)
	return groups, err
}

// ListMembers returns member user ids in join order.
func (r *GroupRepo) ListMembers(ctx context.Context, groupID string) ([]string, error) {
	var members []string
	err := r.db.SelectContext(ctx, &members, `SELECT user_id FROM group_members WHERE group_id=$1 ORDER BY joined_at ASC`, groupID)
	return members, err
}

// IsMember checks membership.
func (r *GroupRepo) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id=$1 AND user_id=$2)`, groupID, userID)
	return exists, err
}

// ToggleJoin adds the user if absent and removes them if present. The same
// call serves both directions; the returned bool reports whether the user is
// a member afterwards.
func (r *GroupRepo) ToggleJoin(ctx context.Context, groupID, userID string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM groups WHERE id=$1)`, groupID); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrGroupNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE group_id=$1 AND user_id=$2`, groupID, userID)
	if err != nil {
		return false, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if removed > 0 {
		return false, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`, groupID, userID); err != nil {
		return false, err
	}
	return true, nil
}

// AddMember appends a user to the member set, failing if already present.
func (r *GroupRepo) AddMember(ctx context.Context, groupID, userID string) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM groups WHERE id=$1)`, groupID); err != nil {
		return err
	}
	if !exists {
		return ErrGroupNotFound
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO group_members (group_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, groupID, userID)
	if err != nil {
		return err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return ErrAlreadyMember
	}
	return nil
}
