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
	ErrEventNotFound = errors.New("event not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrAlreadyJoined = errors.New("user already joined the event")
)

// EventRepository abstracts event and task-board persistence.
type EventRepository interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, eventID string) (models.Event, error)
	UpdateEvent(ctx context.Context, event models.Event) (models.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	JoinEvent(ctx context.Context, eventID, userID string) error
	Participants(ctx context.Context, eventID string) ([]string, error)
	AddTask(ctx context.Context, eventID, title, assignedTo string) (models.Task, error)
	UpdateTaskStatus(ctx context.Context, eventID, taskID, status string) (models.Task, error)
}

// EventRepo is a sqlx implementation of EventRepository.
type EventRepo struct {
	db *sqlx.DB
}

// NewEventRepo constructs an EventRepo.
func NewEventRepo(db *sqlx.DB) *EventRepo {
	return &EventRepo{db: db}
}

// CreateEvent creates an event and enrolls the organizer atomically.
func (r *EventRepo) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Event{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err = tx.QueryRowxContext(ctx, `INSERT INTO events (id, title, date, location, organizer_id) VALUES ($1, $2, $3, $4, $5)
        RETURNING id, title, date, location, organizer_id, created_at`,
		event.ID, event.Title, event.Date, event.Location, event.OrganizerID).
		StructScan(&event); err != nil {
		return models.Event{}, err
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2)`, event.ID, event.OrganizerID); err != nil {
		return models.Event{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Event{}, err
	}
	event.Participants = []string{event.OrganizerID}
	return event, nil
}

// ListEvents returns all events sorted by upcoming date.
func (r *EventRepo) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.SelectContext(ctx, &events, `SELECT id, title, date, location, organizer_id, created_at FROM events ORDER BY date ASC`)
	return events, err
}

// GetEvent fetches an event with participants and task board.
func (r *EventRepo) GetEvent(ctx context.Context, eventID string) (models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `SELECT id, title, date, location, organizer_id, created_at FROM events WHERE id=$1`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, err
	}

	if event.Participants, err = r.Participants(ctx, eventID); err != nil {
		return models.Event{}, err
	}
	if err = r.db.SelectContext(ctx, &event.Tasks, `SELECT id, event_id, title, assigned_to, status FROM event_tasks WHERE event_id=$1 ORDER BY seq ASC`, eventID); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// UpdateEvent rewrites title, date and location.
func (r *EventRepo) UpdateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	err := r.db.QueryRowxContext(ctx, `UPDATE events SET title=$2, date=$3, location=$4 WHERE id=$1
        RETURNING id, title, date, location, organizer_id, created_at`,
		event.ID, event.Title, event.Date, event.Location).
		StructScan(&event)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, ErrEventNotFound
	}
	return event, err
}

// DeleteEvent removes the event, its participants and tasks.
func (r *EventRepo) DeleteEvent(ctx context.Context, eventID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id=$1`, eventID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrEventNotFound
	}
	return nil
}

// JoinEvent adds a participant; joining is not a toggle.
func (r *EventRepo) JoinEvent(ctx context.Context, eventID, userID string) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM events WHERE id=$1)`, eventID); err != nil {
		return err
	}
	if !exists {
		return ErrEventNotFound
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, eventID, userID)
	if err != nil {
		return err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return ErrAlreadyJoined
	}
	return nil
}

// Participants returns participant user ids in join order.
func (r *EventRepo) Participants(ctx context.Context, eventID string) ([]string, error) {
	var participants []string
	err := r.db.SelectContext(ctx, &participants, `SELECT user_id FROM event_participants WHERE event_id=$1 ORDER BY joined_at ASC`, eventID)
	return participants, err
}

// AddTask appends a task in the Todo status.
func (r *EventRepo) AddTask(ctx context.Context, eventID, title, assignedTo string) (models.Task, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM events WHERE id=$1)`, eventID); err != nil {
		return models.Task{}, err
	}
	if !exists {
		return models.Task{}, ErrEventNotFound
	}

	var task models.Task
	err := r.db.QueryRowxContext(ctx, `INSERT INTO event_tasks (id, event_id, title, assigned_to, status) VALUES ($1, $2, $3, $4, $5)
        RETURNING id, event_id, title, assigned_to, status`,
		uuid.NewString(), eventID, title, assignedTo, models.TaskStatusTodo).
		StructScan(&task)
	return task, err
}

// UpdateTaskStatus overwrites the status. Any transition is allowed and no
// history is kept.
func (r *EventRepo) UpdateTaskStatus(ctx context.Context, eventID, taskID, status string) (models.Task, error) {
	var task models.Task
	err := r.db.QueryRowxContext(ctx, `UPDATE event_tasks SET status=$3 WHERE id=$2 AND event_id=$1
        RETURNING id, event_id, title, assigned_to, status`,
		eventID, taskID, status).
		StructScan(&task)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	return task, err
}
