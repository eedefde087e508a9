package models

import "time"

// User is a registered platform member. Accounts are created unverified and
// flipped to verified by the (out of process) confirmation flow; they are
// never hard-deleted.
type User struct {
	ID             string    `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	ProfilePicture string    `db:"profile_picture" json:"profile_picture"`
	Bio            string    `db:"bio" json:"bio"`
	Major          string    `db:"major" json:"major"`
	Semester       string    `db:"semester" json:"semester"`
	Verified       bool      `db:"verified" json:"verified"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is the slim shape used for sidebars and sender resolution.
type UserSummary struct {
	ID             string `db:"id" json:"id"`
	Username       string `db:"username" json:"username"`
	ProfilePicture string `db:"profile_picture" json:"profile_picture"`
}
