package models

import "time"

// Group is a study group. Members mutate via join/leave and add-by-name;
// messages and files are append-only.
type Group struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Subject     string    `db:"subject" json:"subject"`
	Description string    `db:"description" json:"description"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	Members []string `db:"-" json:"members,omitempty"`
}

// GroupMessage is a message in a group room. SenderUsername is resolved at
// read time so fan-out always carries an identity-resolved record.
type GroupMessage struct {
	ID             string    `db:"id" json:"id"`
	GroupID        string    `db:"group_id" json:"group_id"`
	SenderID       string    `db:"sender_id" json:"sender_id"`
	SenderUsername string    `db:"sender_username" json:"sender_username,omitempty"`
	Text           string    `db:"text" json:"text"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// GroupFile is a manifest entry for a file shared in a group. The blob itself
// lives in an external content area; only the path is recorded here.
type GroupFile struct {
	ID          string    `db:"id" json:"id"`
	GroupID     string    `db:"group_id" json:"group_id"`
	Name        string    `db:"name" json:"name"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	UploaderID  string    `db:"uploader_id" json:"uploader_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
