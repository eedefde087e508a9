package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campus-connect/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository abstracts user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	ListOtherUsers(ctx context.Context, excludeID string) ([]models.UserSummary, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a new unverified user.
func (r *UserRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := r.db.QueryRowxContext(ctx, `INSERT INTO users (id, username, email, password_hash, profile_picture, bio, major, semester)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, username, email, password_hash, profile_picture, bio, major, semester, verified, created_at`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.ProfilePicture, user.Bio, user.Major, user.Semester).
		StructScan(&user)
	return user, err
}

// GetUser fetches a user by id.
func (r *UserRepo) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, username, email, password_hash, profile_picture, bio, major, semester, verified, created_at FROM users WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUserByUsername resolves a human-readable handle to a user.
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, username, email, password_hash, profile_picture, bio, major, semester, verified, created_at FROM users WHERE username=$1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// ListOtherUsers returns every known user except excludeID.
func (r *UserRepo) ListOtherUsers(ctx context.Context, excludeID string) ([]models.UserSummary, error) {
	var users []models.UserSummary
	err := r.db.SelectContext(ctx, &users, `SELECT id, username, profile_picture FROM users WHERE id<>$1 ORDER BY username ASC`, excludeID)
	return users, err
}

// UpdateUser mutates profile fields only.
func (r *UserRepo) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	err := r.db.QueryRowxContext(ctx, `UPDATE users SET profile_picture=$2, bio=$3, major=$4, semester=$5 WHERE id=$1
        RETURNING id, username, email, password_hash, profile_picture, bio, major, semester, verified, created_at`,
		user.ID, user.ProfilePicture, user.Bio, user.Major, user.Semester).
		StructScan(&user)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}
