package models

import (
	"time"

	"github.com/lib/pq"
)

// Material is study-material metadata. The file itself is served from an
// external content area; only the path and type are recorded.
type Material struct {
	ID         string         `db:"id" json:"id"`
	Title      string         `db:"title" json:"title"`
	CourseCode string         `db:"course_code" json:"course_code"`
	Topics     pq.StringArray `db:"topics" json:"topics"`
	FileURL    string         `db:"file_url" json:"file_url"`
	FileType   string         `db:"file_type" json:"file_type"`
	UploadedBy string         `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}
