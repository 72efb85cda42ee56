package api

import (
	"errors"
	"net/http"
	"time"

	"nutriwings/health-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StrengthHandler exposes the daily scoring engine.
type StrengthHandler struct {
	strengthService service.StrengthService
}

// NewStrengthHandler creates a new StrengthHandler.
func NewStrengthHandler(strengthService service.StrengthService) *StrengthHandler {
	return &StrengthHandler{strengthService: strengthService}
}

// targetUserID resolves the :userId path parameter, enforcing that members
// can only read their own scores.
func (h *StrengthHandler) targetUserID(c *gin.Context) (primitive.ObjectID, bool) {
	hex, ok := requireOwnObjectID(c, "userId")
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// DailyScore recomputes today's strength score from scratch and returns the
// fresh breakdown. The previous snapshot for today, if any, is replaced.
func (h *StrengthHandler) DailyScore(c *gin.Context) {
	userID, ok := h.targetUserID(c)
	if !ok {
		return
	}

	breakdown, err := h.strengthService.ComputeDailyScore(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to compute daily score")
		}
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// ScoreByDate returns the stored score for one calendar day. Historical
// days are never recomputed; absence is a 404.
func (h *StrengthHandler) ScoreByDate(c *gin.Context) {
	userID, ok := h.targetUserID(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	breakdown, err := h.strengthService.GetScoreByDate(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrScoreNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load score")
		}
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// ScoredDateEntry is one calendar day in the score history, with its
// per-factor breakdown.
type ScoredDateEntry struct {
	Date              string  `json:"date"`
	TotalScore        float64 `json:"totalScore"`
	ProteinScore      float64 `json:"proteinScore"`
	WaterScore        float64 `json:"waterScore"`
	FatScore          float64 `json:"fatScore"`
	CarbScore         float64 `json:"carbScore"`
	DurationPoints    float64 `json:"durationPoints"`
	ConsistencyPoints float64 `json:"consistencyPoints"`
	IntensityPoints   float64 `json:"intensityPoints"`
	FailurePoints     float64 `json:"failurePoints"`
	ActionPoints      float64 `json:"actionPoints"`
}

// ScoreDates lists every day a score was recorded, for the calendar view.
func (h *StrengthHandler) ScoreDates(c *gin.Context) {
	userID, ok := h.targetUserID(c)
	if !ok {
		return
	}

	records, err := h.strengthService.ListScoreDates(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load score dates")
		return
	}

	dates := make([]ScoredDateEntry, 0, len(records))
	for _, r := range records {
		dates = append(dates, ScoredDateEntry{
			Date:              r.Date.Format("2006-01-02"),
			TotalScore:        r.TotalScore,
			ProteinScore:      r.ProteinScore,
			WaterScore:        r.WaterScore,
			FatScore:          r.FatScore,
			CarbScore:         r.CarbScore,
			DurationPoints:    r.DurationPoints,
			ConsistencyPoints: r.ConsistencyPoints,
			IntensityPoints:   r.IntensityPoints,
			FailurePoints:     r.FailurePoints,
			ActionPoints:      r.ActionPoints,
		})
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// Metrics returns today's consumed calories, training minutes and BMI.
func (h *StrengthHandler) Metrics(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	metrics, err := h.strengthService.DailyMetrics(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load daily metrics")
		}
		return
	}
	c.JSON(http.StatusOK, metrics)
}
