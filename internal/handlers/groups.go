package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
	"campus-connect/internal/telemetry"
)

// roomEmitter is the relay surface handlers publish through.
type roomEmitter interface {
	EmitRoom(room, event string, data interface{})
}

// GroupHandler manages group endpoints: membership, chat history and the
// file manifest.
type GroupHandler struct {
	groups        repositories.GroupRepository
	groupMessages repositories.GroupMessageRepository
	groupFiles    repositories.GroupFileRepository
	users         repositories.UserRepository
	relay         roomEmitter
	notifier      notifier
	audit         *telemetry.AuditEmitter
}

// NewGroupHandler constructs a GroupHandler.
func NewGroupHandler(groups repositories.GroupRepository, groupMessages repositories.GroupMessageRepository, groupFiles repositories.GroupFileRepository, users repositories.UserRepository, relay roomEmitter, notifier notifier, audit *telemetry.AuditEmitter) *GroupHandler {
	return &GroupHandler{
		groups:        groups,
		groupMessages: groupMessages,
		groupFiles:    groupFiles,
		users:         users,
		relay:         relay,
		notifier:      notifier,
		audit:         audit,
	}
}

// CreateGroup handles POST /groups.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID := userIDFromContext(c)

	var req struct {
		Name        string `json:"name" binding:"required"`
		Subject     string `json:"subject" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.emitAudit(c, "ERROR", "invalid request payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), models.Group{
		Name:        req.Name,
		Subject:     req.Subject,
		Description: req.Description,
		CreatedBy:   userID,
	})
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create group"})
		return
	}

	h.emitAudit(c, "INFO", "Group created")
	c.JSON(http.StatusCreated, group)
}

// ListGroups returns all groups; with ?q= it narrows to a search.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	var (
		groups []models.Group
		err    error
	)
	if q := c.Query("q"); q != "" {
		groups, err = h.groups.SearchGroups(c.Request.Context(), q)
	} else {
		groups, err = h.groups.ListGroups(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup returns a group with its member set.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, err := h.groups.GetGroup(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrGroupNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "group not found"})
		return
	}
	c.JSON(http.StatusOK, group)
}

// ToggleJoin adds the caller as a member if absent, removes them if present.
// The same endpoint serves both directions based on current state.
func (h *GroupHandler) ToggleJoin(c *gin.Context) {
	groupID := c.Param("group_id")
	userID := userIDFromContext(c)

	joined, err := h.groups.ToggleJoin(c.Request.Context(), groupID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrGroupNotFound) {
			status = http.StatusNotFound
		}
		h.emitAudit(c, "ERROR", "join toggle failed")
		c.JSON(status, gin.H{"error": "could not update membership"})
		return
	}

	if joined {
		h.emitAudit(c, "INFO", "Joined group")
	} else {
		h.emitAudit(c, "INFO", "Left group")
	}
	c.JSON(http.StatusOK, gin.H{"joined": joined})
}

// AddMember resolves a username to an id and appends it to the member set.
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID := c.Param("group_id")

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "user not found"})
		return
	}

	if err := h.groups.AddMember(c.Request.Context(), groupID, user.ID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		case errors.Is(err, repositories.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "user is already a member"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add member"})
		}
		return
	}

	h.emitAudit(c, "INFO", "Member added")
	c.JSON(http.StatusCreated, gin.H{"user_id": user.ID})
}

// GetGroupMessages returns the group chat history for members.
func (h *GroupHandler) GetGroupMessages(c *gin.Context) {
	groupID := c.Param("group_id")
	userID := userIDFromContext(c)

	member, err := h.groups.IsMember(c.Request.Context(), groupID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member"})
		return
	}

	msgs, err := h.groupMessages.ListGroupMessages(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostGroupMessage persists a group message, then fans the stored,
// identity-resolved record out to the group room.
func (h *GroupHandler) PostGroupMessage(c *gin.Context) {
	groupID := c.Param("group_id")
	userID := userIDFromContext(c)

	member, err := h.groups.IsMember(c.Request.Context(), groupID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member"})
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.groupMessages.CreateGroupMessage(c.Request.Context(), groupID, userID, req.Text)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	if h.relay != nil {
		h.relay.EmitRoom(groupID, "receive_group_message", msg)
	}
	if h.notifier != nil {
		if members, err := h.groups.ListMembers(c.Request.Context(), groupID); err == nil {
			h.notifier.NotifyUsers(c.Request.Context(), userID, members, models.NotificationGroupMessage,
				msg.SenderUsername+" sent a message in your group", "/groups/"+groupID)
		}
	}

	h.emitAudit(c, "INFO", "Group message sent")
	c.JSON(http.StatusCreated, msg)
}

// ListFiles returns the group file manifest.
func (h *GroupHandler) ListFiles(c *gin.Context) {
	groupID := c.Param("group_id")
	userID := userIDFromContext(c)

	member, err := h.groups.IsMember(c.Request.Context(), groupID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member"})
		return
	}

	files, err := h.groupFiles.ListFiles(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load files"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// AddFile appends a manifest entry for a file already placed in the external
// content area.
func (h *GroupHandler) AddFile(c *gin.Context) {
	groupID := c.Param("group_id")
	userID := userIDFromContext(c)

	member, err := h.groups.IsMember(c.Request.Context(), groupID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member"})
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		StoragePath string `json:"storage_path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := h.groupFiles.AddFile(c.Request.Context(), groupID, userID, req.Name, req.StoragePath)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record file"})
		return
	}

	h.emitAudit(c, "INFO", "Group file shared")
	c.JSON(http.StatusCreated, file)
}

func (h *GroupHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
