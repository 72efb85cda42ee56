package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecoveryHandler covers the sleep and water endpoints.
type RecoveryHandler struct {
	recoveryService service.RecoveryService
}

// NewRecoveryHandler creates a new RecoveryHandler.
func NewRecoveryHandler(recoveryService service.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{recoveryService: recoveryService}
}

// --- Request Structs ---

type ManualSleepRequest struct {
	DurationSeconds int64      `json:"durationSeconds" binding:"required,gt=0"`
	EndTime         *time.Time `json:"endTime"`
}

type WaterRequest struct {
	Milliliters float64 `json:"milliliters" binding:"required,gt=0"`
}

// --- Sleep Handlers ---

// StartSleep opens a running sleep timer.
func (h *RecoveryHandler) StartSleep(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	entry, err := h.recoveryService.StartSleep(c.Request.Context(), userID)
	if err != nil {
		h.mapRecoveryError(c, err, "Failed to start sleep tracking")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// StopSleep closes the running timer.
func (h *RecoveryHandler) StopSleep(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	entry, err := h.recoveryService.StopSleep(c.Request.Context(), userID)
	if err != nil {
		h.mapRecoveryError(c, err, "Failed to stop sleep tracking")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// LogSleep records a manual sleep entry.
func (h *RecoveryHandler) LogSleep(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req ManualSleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.recoveryService.ManualSleepEntry(c.Request.Context(), userID, req.DurationSeconds, req.EndTime)
	if err != nil {
		h.mapRecoveryError(c, err, "Failed to log sleep")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// LatestSleep returns the most recent entry, auto-closing a stale timer.
func (h *RecoveryHandler) LatestSleep(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	entry, err := h.recoveryService.LatestSleep(c.Request.Context(), userID)
	if err != nil {
		h.mapRecoveryError(c, err, "Failed to load sleep entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// TodaySleep returns today's completed entries plus their total.
func (h *RecoveryHandler) TodaySleep(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	entries, err := h.recoveryService.TodaySleepEntries(c.Request.Context(), userID)
	if err != nil {
		h.mapRecoveryError(c, err, "Failed to load today's sleep")
		return
	}
	var total int64
	for _, e := range entries {
		total += e.DurationSeconds
	}
	if entries == nil {
		entries = []domain.SleepEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "totalSeconds": total})
}

// DeleteSleep removes one sleep entry.
func (h *RecoveryHandler) DeleteSleep(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("entryId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if err := h.recoveryService.DeleteSleepEntry(c.Request.Context(), userID, entryID); err != nil {
		h.mapRecoveryError(c, err, "Failed to delete sleep entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sleep entry deleted"})
}

// --- Water Handlers ---

// AddWater appends one drink to today's log.
func (h *RecoveryHandler) AddWater(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req WaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.recoveryService.AddWater(c.Request.Context(), userID, req.Milliliters)
	if err != nil {
		h.mapRecoveryError(c, err, "Failed to log water")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// TodayWater returns today's drinks plus their total.
func (h *RecoveryHandler) TodayWater(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	entries, err := h.recoveryService.TodayWaterEntries(c.Request.Context(), userID)
	if err != nil {
		h.mapRecoveryError(c, err, "Failed to load today's water")
		return
	}
	var total float64
	for _, e := range entries {
		total += e.Milliliters
	}
	if entries == nil {
		entries = []domain.WaterEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "totalMilliliters": total})
}

// DeleteWater removes one water entry.
func (h *RecoveryHandler) DeleteWater(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("entryId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if err := h.recoveryService.DeleteWaterEntry(c.Request.Context(), userID, entryID); err != nil {
		h.mapRecoveryError(c, err, "Failed to delete water entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Water entry deleted"})
}

func (h *RecoveryHandler) mapRecoveryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSleepEntryNotFound),
		errors.Is(err, service.ErrWaterEntryNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoActiveSleep),
		errors.Is(err, service.ErrWaterValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
