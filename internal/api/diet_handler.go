package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/service"

	"github.com/gin-gonic/gin"
)

// DietHandler holds the diet service dependency.
type DietHandler struct {
	dietService service.DietService
}

// NewDietHandler creates a new DietHandler.
func NewDietHandler(dietService service.DietService) *DietHandler {
	return &DietHandler{dietService: dietService}
}

// --- Request/Response Structs ---

type DietRequest struct {
	FoodName      string  `json:"foodName" binding:"required"`
	Date          string  `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string  `json:"time" binding:"required"` // HH:MM display time
	Status        string  `json:"status"`
	PortionSize   float64 `json:"portionSize" binding:"required,gt=0"`
	PortionTaken  float64 `json:"portionTaken" binding:"gte=0"`
	TotalCalories float64 `json:"totalCalories" binding:"gte=0"`
	Carbs         float64 `json:"carbs" binding:"gte=0"`
	Protein       float64 `json:"protein" binding:"gte=0"`
	Fats          float64 `json:"fats" binding:"gte=0"`
	ImageURL      string  `json:"imageUrl"`
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

func (r *DietRequest) toInput() (service.DietInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return service.DietInput{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return service.DietInput{
		FoodName:      r.FoodName,
		Date:          date,
		Time:          r.Time,
		Status:        domain.DietStatus(r.Status),
		PortionSize:   r.PortionSize,
		PortionTaken:  r.PortionTaken,
		TotalCalories: r.TotalCalories,
		Carbs:         r.Carbs,
		Protein:       r.Protein,
		Fats:          r.Fats,
		ImageURL:      r.ImageURL,
	}, nil
}

// --- Handler Methods ---

// LogDiet records one meal for the authenticated user.
func (h *DietHandler) LogDiet(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req DietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.dietService.LogDiet(c.Request.Context(), userID, input)
	if err != nil {
		h.mapDietError(c, err, "Failed to log diet entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetDiet returns one entry by its external identifier.
func (h *DietHandler) GetDiet(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	entry, err := h.dietService.GetDiet(c.Request.Context(), userID, c.Param("dietId"))
	if err != nil {
		h.mapDietError(c, err, "Failed to load diet entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetHistory returns the full diet log, newest first.
func (h *DietHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	entries, err := h.dietService.GetHistory(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load diet history")
		return
	}
	if entries == nil {
		entries = []domain.DietEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// UpdateDiet overwrites one entry.
func (h *DietHandler) UpdateDiet(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req DietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.dietService.UpdateDiet(c.Request.Context(), userID, c.Param("dietId"), input)
	if err != nil {
		h.mapDietError(c, err, "Failed to update diet entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteDiet removes one entry.
func (h *DietHandler) DeleteDiet(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	if err := h.dietService.DeleteDiet(c.Request.Context(), userID, c.Param("dietId")); err != nil {
		h.mapDietError(c, err, "Failed to delete diet entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Diet entry deleted"})
}

// Stats returns the taken-macro totals for one day (today by default).
func (h *DietHandler) Stats(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	stats, err := h.dietService.StatsForDate(c.Request.Context(), userID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute diet stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MonthlyCalories returns taken calories per day for one calendar month.
func (h *DietHandler) MonthlyCalories(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	monthStart, err := time.Parse("2006-01", c.Query("month"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	data, err := h.dietService.CalorieDataForMonth(c.Request.Context(), userID, monthStart.Year(), monthStart.Month())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load monthly calories")
		return
	}
	c.JSON(http.StatusOK, data)
}

// RecommendedCalories returns the stored daily calorie target.
func (h *DietHandler) RecommendedCalories(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	target, err := h.dietService.RecommendedCalories(c.Request.Context(), userID)
	if err != nil {
		h.mapDietError(c, err, "Failed to load calorie target")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendedCal": target})
}

// UploadURL issues a presigned PUT URL for a food photo.
func (h *DietHandler) UploadURL(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ticket, err := h.dietService.FoodImageUploadURL(c.Request.Context(), userID, req.ContentType)
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

func (h *DietHandler) mapDietError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrDietNotFound), errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDietValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
