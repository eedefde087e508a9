package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"campus-connect/internal/models"
)

// MaterialRepository stores study-material metadata.
type MaterialRepository interface {
	CreateMaterial(ctx context.Context, material models.Material) (models.Material, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
	SearchMaterials(ctx context.Context, query string) ([]models.Material, error)
}

// MaterialRepo is a sqlx implementation of MaterialRepository.
type MaterialRepo struct {
	db *sqlx.DB
}

// NewMaterialRepo constructs a MaterialRepo.
func NewMaterialRepo(db *sqlx.DB) *MaterialRepo {
	return &MaterialRepo{db: db}
}

// CreateMaterial inserts a material record. Course codes are stored
// upper-cased so "cse110" and "CSE110" index the same course.
func (r *MaterialRepo) CreateMaterial(ctx context.Context, material models.Material) (models.Material, error) {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}
	material.CourseCode = strings.ToUpper(material.CourseCode)
	if material.Topics == nil {
		material.Topics = pq.StringArray{}
	}
	err := r.db.QueryRowxContext(ctx, `INSERT INTO materials (id, title, course_code, topics, file_url, file_type, uploaded_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, title, course_code, topics, file_url, file_type, uploaded_by, created_at`,
		material.ID, material.Title, material.CourseCode, material.Topics, material.FileURL, material.FileType, material.UploadedBy).
		StructScan(&material)
	return material, err
}

// ListMaterials returns all materials, newest first.
func (r *MaterialRepo) ListMaterials(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.SelectContext(ctx, &materials, `SELECT id, title, course_code, topics, file_url, file_type, uploaded_by, created_at
        FROM materials ORDER BY created_at DESC`)
	return materials, err
}

// SearchMaterials matches title or course code, case-insensitively.
func (r *MaterialRepo) SearchMaterials(ctx context.Context, query string) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.SelectContext(ctx, &materials, `SELECT id, title, course_code, topics, file_url, file_type, uploaded_by, created_at
        FROM materials WHERE title ILIKE '%' || $1 || '%' OR course_code ILIKE '%' || $1 || '%'
        ORDER BY created_at DESC`, query)
	return materials, err
}
