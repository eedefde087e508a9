package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
)

// MaterialHandler serves study-material metadata.
type MaterialHandler struct {
	materials repositories.MaterialRepository
}

// NewMaterialHandler constructs a MaterialHandler.
func NewMaterialHandler(materials repositories.MaterialRepository) *MaterialHandler {
	return &MaterialHandler{materials: materials}
}

// CreateMaterial records metadata for a file already placed in the external
// content area.
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	userID := userIDFromContext(c)

	var req struct {
		Title      string   `json:"title" binding:"required"`
		CourseCode string   `json:"course_code" binding:"required"`
		Topics     []string `json:"topics"`
		FileURL    string   `json:"file_url" binding:"required"`
		FileType   string   `json:"file_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.materials.CreateMaterial(c.Request.Context(), models.Material{
		Title:      req.Title,
		CourseCode: req.CourseCode,
		Topics:     req.Topics,
		FileURL:    req.FileURL,
		FileType:   req.FileType,
		UploadedBy: userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store material"})
		return
	}
	c.JSON(http.StatusCreated, material)
}

// ListMaterials returns all materials.
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	materials, err := h.materials.ListMaterials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load materials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

// SearchMaterials matches titles and course codes against ?q=.
func (h *MaterialHandler) SearchMaterials(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}

	materials, err := h.materials.SearchMaterials(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials})
}
