package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
	"campus-connect/internal/telemetry"
)

// EventHandler manages event endpoints: the event lifecycle, participant
// enrollment and the per-event task board.
type EventHandler struct {
	events   repositories.EventRepository
	notifier notifier
	audit    *telemetry.AuditEmitter
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events repositories.EventRepository, notifier notifier, audit *telemetry.AuditEmitter) *EventHandler {
	return &EventHandler{events: events, notifier: notifier, audit: audit}
}

// CreateEvent handles POST /events. Every other user is notified about the
// new event.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID := userIDFromContext(c)

	var req struct {
		Title    string    `json:"title" binding:"required"`
		Date     time.Time `json:"date" binding:"required"`
		Location string    `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.emitAudit(c, "ERROR", "invalid request payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), models.Event{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		OrganizerID: userID,
	})
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
		return
	}

	if h.notifier != nil {
		h.notifier.NotifyAllExcept(c.Request.Context(), userID, models.NotificationNewEvent,
			"New event: "+event.Title, "/events/"+event.ID)
	}

	h.emitAudit(c, "INFO", "Event created")
	c.JSON(http.StatusCreated, event)
}

// ListEvents returns all events ordered by date.
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEvent returns one event with its participants and task board.
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrEventNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent lets the organizer change title, date or location. Participants
// are notified about the change.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	eventID := c.Param("event_id")
	userID := userIDFromContext(c)

	current, err := h.events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrEventNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "event not found"})
		return
	}
	if current.OrganizerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the organizer can update the event"})
		return
	}

	var req struct {
		Title    string     `json:"title"`
		Date     *time.Time `json:"date"`
		Location *string    `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title != "" {
		current.Title = req.Title
	}
	if req.Date != nil {
		current.Date = *req.Date
	}
	if req.Location != nil {
		current.Location = *req.Location
	}

	updated, err := h.events.UpdateEvent(c.Request.Context(), current)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrEventNotFound) {
			status = http.StatusNotFound
		}
		h.emitAudit(c, "ERROR", "event update failed")
		c.JSON(status, gin.H{"error": "could not update event"})
		return
	}

	h.notifyParticipants(c, eventID, userID, models.NotificationEventUpdate,
		"Event updated: "+updated.Title)

	h.emitAudit(c, "INFO", "Event updated")
	c.JSON(http.StatusOK, updated)
}

// DeleteEvent lets the organizer remove an event. The participant set is
// captured before the delete drops it; the cancellation notice goes out only
// once the delete has succeeded.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventID := c.Param("event_id")
	userID := userIDFromContext(c)

	current, err := h.events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrEventNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "event not found"})
		return
	}
	if current.OrganizerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the organizer can delete the event"})
		return
	}

	participants, err := h.events.Participants(c.Request.Context(), eventID)
	if err != nil {
		participants = nil
	}

	if err := h.events.DeleteEvent(c.Request.Context(), eventID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrEventNotFound) {
			status = http.StatusNotFound
		}
		h.emitAudit(c, "ERROR", "event delete failed")
		c.JSON(status, gin.H{"error": "could not delete event"})
		return
	}

	if h.notifier != nil && len(participants) > 0 {
		h.notifier.NotifyUsers(c.Request.Context(), userID, participants, models.NotificationEvent,
			"Event cancelled: "+current.Title, "/events/"+eventID)
	}

	h.emitAudit(c, "INFO", "Event deleted")
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// JoinEvent enrolls the caller as a participant.
func (h *EventHandler) JoinEvent(c *gin.Context) {
	eventID := c.Param("event_id")
	userID := userIDFromContext(c)

	if err := h.events.JoinEvent(c.Request.Context(), eventID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, repositories.ErrAlreadyJoined):
			c.JSON(http.StatusConflict, gin.H{"error": "already joined"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not join event"})
		}
		return
	}

	h.emitAudit(c, "INFO", "Joined event")
	c.JSON(http.StatusOK, gin.H{"joined": true})
}

// AddTask appends a task to the event board. Participants are notified.
func (h *EventHandler) AddTask(c *gin.Context) {
	eventID := c.Param("event_id")
	userID := userIDFromContext(c)

	var req struct {
		Title      string `json:"title" binding:"required"`
		AssignedTo string `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.events.AddTask(c.Request.Context(), eventID, req.Title, req.AssignedTo)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrEventNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not add task"})
		return
	}

	h.notifyParticipants(c, eventID, userID, models.NotificationEventUpdate,
		"New task on the event board: "+task.Title)

	h.emitAudit(c, "INFO", "Task added")
	c.JSON(http.StatusCreated, task)
}

// UpdateTaskStatus moves a task to a new status. Any known status may follow
// any other; participants are notified about the move.
func (h *EventHandler) UpdateTaskStatus(c *gin.Context) {
	eventID := c.Param("event_id")
	taskID := c.Param("task_id")
	userID := userIDFromContext(c)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidTaskStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task status"})
		return
	}

	task, err := h.events.UpdateTaskStatus(c.Request.Context(), eventID, taskID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventNotFound), errors.Is(err, repositories.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update task"})
		}
		return
	}

	h.notifyParticipants(c, eventID, userID, models.NotificationEventUpdate,
		"Task \""+task.Title+"\" moved to "+task.Status)

	h.emitAudit(c, "INFO", "Task status updated")
	c.JSON(http.StatusOK, task)
}

// notifyParticipants fans a notification out to the event's participant set.
// Fan-out failures never fail the request.
func (h *EventHandler) notifyParticipants(c *gin.Context, eventID, actorID, notificationType, message string) {
	if h.notifier == nil {
		return
	}
	participants, err := h.events.Participants(c.Request.Context(), eventID)
	if err != nil {
		return
	}
	h.notifier.NotifyUsers(c.Request.Context(), actorID, participants, notificationType, message, "/events/"+eventID)
}

func (h *EventHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
