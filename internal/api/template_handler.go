package api

import (
	"errors"
	"fmt"
	"net/http"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateHandler covers the workout-template catalog. Reads are open to
// every authenticated user; writes are admin-only (enforced in routes).
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type TemplateRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
}

// CreateTemplate adds a catalog entry.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), service.TemplateInput{
		Name:     req.Name,
		Category: req.Category,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.mapTemplateError(c, err, "Failed to create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// ListTemplates returns the whole catalog.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load templates")
		return
	}
	if templates == nil {
		templates = []domain.WorkoutTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

// UpdateTemplate edits a catalog entry; empty fields keep stored values.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	templateID, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID")
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), templateID, service.TemplateInput{
		Name:     req.Name,
		Category: req.Category,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.mapTemplateError(c, err, "Failed to update template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteTemplate removes a catalog entry.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	templateID, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), templateID); err != nil {
		h.mapTemplateError(c, err, "Failed to delete template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// UploadURL issues a presigned PUT URL for a catalog image.
func (h *TemplateHandler) UploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ticket, err := h.templateService.TemplateImageUploadURL(c.Request.Context(), req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImageType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		}
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TemplateHandler) mapTemplateError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTemplateValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
