package models

import "time"

// Post is a feed entry. Likes toggle per user; views drive the popular sort.
type Post struct {
	ID        string    `db:"id" json:"id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	Image     string    `db:"image" json:"image,omitempty"`
	Views     int       `db:"views" json:"views"`
	LikeCount int       `db:"like_count" json:"like_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
