package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
)

// UserHandler manages user endpoints.
type UserHandler struct {
	users repositories.UserRepository
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(users repositories.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// CreateUser registers a new account. Accounts start unverified; the
// confirmation flow is an external collaborator.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// FindUser resolves a user by username query, for add-participant pickers.
func (h *UserHandler) FindUser(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing username"})
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser returns a profile by id.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListOtherUsers returns everyone except the caller, for the chat sidebar.
func (h *UserHandler) ListOtherUsers(c *gin.Context) {
	users, err := h.users.ListOtherUsers(c.Request.Context(), userIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUser mutates profile fields. Callers may only update their own account.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID != c.Param("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "can only update your own account"})
		return
	}

	var req struct {
		ProfilePicture string `json:"profile_picture"`
		Bio            string `json:"bio"`
		Major          string `json:"major"`
		Semester       string `json:"semester"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), models.User{
		ID:             userID,
		ProfilePicture: req.ProfilePicture,
		Bio:            req.Bio,
		Major:          req.Major,
		Semester:       req.Semester,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
