package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
)

// PostHandler serves the campus feed.
type PostHandler struct {
	posts repositories.PostRepository
}

// NewPostHandler constructs a PostHandler.
func NewPostHandler(posts repositories.PostRepository) *PostHandler {
	return &PostHandler{posts: posts}
}

// CreatePost handles POST /posts.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := userIDFromContext(c)

	var req struct {
		Content string `json:"content" binding:"required"`
		Image   string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), models.Post{
		AuthorID: userID,
		Content:  req.Content,
		Image:    req.Image,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListPosts returns the feed. ?new=true sorts newest first, otherwise the
// feed is ordered by views.
func (h *PostHandler) ListPosts(c *gin.Context) {
	newestFirst := c.Query("new") == "true"

	posts, err := h.posts.ListPosts(c.Request.Context(), newestFirst)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// ToggleLike likes the post if the caller has not liked it yet, unlikes it
// otherwise.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID := c.Param("post_id")
	userID := userIDFromContext(c)

	liked, err := h.posts.ToggleLike(c.Request.Context(), postID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrPostNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not update like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
