package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campus-connect/internal/models"
)

// GroupFileRepository maintains the per-group file manifest. Blobs live in an
// external content area; entries here are append-only metadata.
type GroupFileRepository interface {
	AddFile(ctx context.Context, groupID, uploaderID, name, storagePath string) (models.GroupFile, error)
	ListFiles(ctx context.Context, groupID string) ([]models.GroupFile, error)
}

// GroupFileRepo is a sqlx-backed implementation.
type GroupFileRepo struct {
	db *sqlx.DB
}

// NewGroupFileRepo constructs a GroupFileRepo.
func NewGroupFileRepo(db *sqlx.DB) *GroupFileRepo {
	return &GroupFileRepo{db: db}
}

// AddFile appends a manifest entry.
func (r *GroupFileRepo) AddFile(ctx context.Context, groupID, uploaderID, name, storagePath string) (models.GroupFile, error) {
	var file models.GroupFile
	err := r.db.QueryRowxContext(ctx, `INSERT INTO group_files (id, group_id, name, storage_path, uploader_id) VALUES ($1, $2, $3, $4, $5)
        RETURNING id, group_id, name, storage_path, uploader_id, created_at`,
		uuid.NewString(), groupID, name, storagePath, uploaderID).
		StructScan(&file)
	return file, err
}

// ListFiles returns the manifest in upload order.
func (r *GroupFileRepo) ListFiles(ctx context.Context, groupID string) ([]models.GroupFile, error) {
	var files []models.GroupFile
	err := r.db.SelectContext(ctx, &files, `SELECT id, group_id, name, storage_path, uploader_id, created_at FROM group_files
        WHERE group_id=$1 ORDER BY seq ASC`, groupID)
	return files, err
}
