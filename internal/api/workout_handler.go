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

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request Structs ---

type WorkoutActionRequest struct {
	Reps     int     `json:"reps" binding:"gte=0"`
	WeightKg float64 `json:"weightKg" binding:"gte=0"`
	Failure  string  `json:"failure" binding:"omitempty,oneof=yes no"`
}

type WorkoutUnitRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Category string                 `json:"category"`
	ImageURL string                 `json:"imageUrl"`
	Actions  []WorkoutActionRequest `json:"actions" binding:"required,min=1,dive"`
}

type SaveSessionRequest struct {
	StartTime       time.Time            `json:"startTime" binding:"required"`
	DurationSeconds int64                `json:"durationSeconds" binding:"required,gt=0"`
	Workouts        []WorkoutUnitRequest `json:"workouts" binding:"required,min=1,dive"`
}

type ActionUpdateRequest struct {
	UnitIndex int     `json:"unitIndex" binding:"gte=0"`
	SetIndex  int     `json:"setIndex" binding:"required,gt=0"`
	Reps      int     `json:"reps" binding:"gte=0"`
	WeightKg  float64 `json:"weightKg" binding:"gte=0"`
	Failure   string  `json:"failure" binding:"omitempty,oneof=yes no"`
}

// --- Handler Methods ---

// SaveSession stores a finished workout.
func (h *WorkoutHandler) SaveSession(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req SaveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	units := make([]service.WorkoutUnitInput, 0, len(req.Workouts))
	for _, u := range req.Workouts {
		actions := make([]domain.WorkoutAction, 0, len(u.Actions))
		for _, a := range u.Actions {
			actions = append(actions, domain.WorkoutAction{
				Reps:     a.Reps,
				WeightKg: a.WeightKg,
				Failure:  a.Failure,
			})
		}
		units = append(units, service.WorkoutUnitInput{
			Name:     u.Name,
			Category: u.Category,
			ImageURL: u.ImageURL,
			Actions:  actions,
		})
	}

	session, err := h.workoutService.SaveSession(c.Request.Context(), userID, req.StartTime, req.DurationSeconds, units)
	if err != nil {
		h.mapWorkoutError(c, err, "Failed to save workout session")
		return
	}
	c.JSON(http.StatusCreated, session)
}

// History returns the user's sessions, newest first.
func (h *WorkoutHandler) History(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	sessions, err := h.workoutService.History(c.Request.Context(), userID)
	if err != nil {
		h.mapWorkoutError(c, err, "Failed to load workout history")
		return
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession returns one session.
func (h *WorkoutHandler) GetSession(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return
	}

	session, err := h.workoutService.GetSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.mapWorkoutError(c, err, "Failed to load workout session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateAction corrects one set in a saved session.
func (h *WorkoutHandler) UpdateAction(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return
	}

	var req ActionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.workoutService.UpdateAction(c.Request.Context(), userID, sessionID, service.ActionUpdateInput{
		UnitIndex: req.UnitIndex,
		SetIndex:  req.SetIndex,
		Reps:      req.Reps,
		WeightKg:  req.WeightKg,
		Failure:   req.Failure,
	})
	if err != nil {
		h.mapWorkoutError(c, err, "Failed to update set")
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteAction removes one set; remaining sets are re-sequenced.
func (h *WorkoutHandler) DeleteAction(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return
	}

	var req struct {
		UnitIndex int `json:"unitIndex" binding:"gte=0"`
		SetIndex  int `json:"setIndex" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.workoutService.DeleteAction(c.Request.Context(), userID, sessionID, req.UnitIndex, req.SetIndex)
	if err != nil {
		h.mapWorkoutError(c, err, "Failed to delete set")
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession removes a whole session.
func (h *WorkoutHandler) DeleteSession(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return
	}

	if err := h.workoutService.DeleteSession(c.Request.Context(), userID, sessionID); err != nil {
		h.mapWorkoutError(c, err, "Failed to delete workout session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout session deleted"})
}

func (h *WorkoutHandler) mapWorkoutError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrActionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
