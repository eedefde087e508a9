package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campus-connect/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

// PostRepository abstracts feed persistence.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	ListPosts(ctx context.Context, newestFirst bool) ([]models.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
}

// PostRepo is a sqlx implementation of PostRepository.
type PostRepo struct {
	db *sqlx.DB
}

// NewPostRepo constructs a PostRepo.
func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db: db}
}

// CreatePost inserts a feed entry.
func (r *PostRepo) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	err := r.db.QueryRowxContext(ctx, `INSERT INTO posts (id, author_id, content, image) VALUES ($1, $2, $3, $4)
        RETURNING id, author_id, content, image, views, created_at`,
		post.ID, post.AuthorID, post.Content, post.Image).
		Scan(&post.ID, &post.AuthorID, &post.Content, &post.Image, &post.Views, &post.CreatedAt)
	return post, err
}

// ListPosts returns the feed, newest first or by view count.
func (r *PostRepo) ListPosts(ctx context.Context, newestFirst bool) ([]models.Post, error) {
	order := `p.views DESC`
	if newestFirst {
		order = `p.created_at DESC`
	}
	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, `SELECT p.id, p.author_id, p.content, p.image, p.views,
            (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count, p.created_at
        FROM posts p ORDER BY `+order)
	return posts, err
}

// ToggleLike likes the post if the user has not, otherwise removes the like.
// The returned bool reports whether the post is liked afterwards.
func (r *PostRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id=$1)`, postID); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrPostNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id=$1 AND user_id=$2`, postID, userID)
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

	if _, err := r.db.ExecContext(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID); err != nil {
		return false, err
	}
	return true, nil
}
