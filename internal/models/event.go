package models

import "time"

// Task statuses. Transitions are unconstrained: any status may be written
// over any other and no history is kept.
const (
	TaskStatusTodo       = "Todo"
	TaskStatusInProgress = "InProgress"
	TaskStatusDone       = "Done"
)

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Event is a campus event with a participant set and an ordered task board.
type Event struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Date        time.Time `db:"date" json:"date"`
	Location    string    `db:"location" json:"location"`
	OrganizerID string    `db:"organizer_id" json:"organizer_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	Participants []string `db:"-" json:"participants,omitempty"`
	Tasks        []Task   `db:"-" json:"tasks,omitempty"`
}

// Task is a board entry on an event.
type Task struct {
	ID         string `db:"id" json:"id"`
	EventID    string `db:"event_id" json:"event_id"`
	Title      string `db:"title" json:"title"`
	AssignedTo string `db:"assigned_to" json:"assigned_to"`
	Status     string `db:"status" json:"status"`
}
