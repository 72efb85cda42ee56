package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Per-factor caps for the strength score. Each formula clamps independently
// via min(raw, cap); the order of clamping does not matter.
const (
	ProteinScoreCap      = 20.0
	WaterScoreCap        = 10.0
	FatScoreCap          = 5.0
	CarbScoreCap         = 10.0
	DurationPointsCap    = 20.0
	ConsistencyPointsCap = 5.0
	IntensityPointsCap   = 7.5
	FailurePointsCap     = 7.5
	ActionPointsCap      = 15.0

	// TotalScoreCap applies to the reported total only. The persisted record
	// keeps the raw sum, which can marginally exceed 100 through the
	// progressive-overload doubling in the action factor.
	TotalScoreCap = 100.0
)

// StrengthScore is the daily snapshot the scoring engine persists. Date is
// normalized to the start of the calendar day; a unique (userId, date) index
// guarantees at most one record per user per day.
type StrengthScore struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Date   time.Time          `bson:"date" json:"date"`

	TotalScore        float64 `bson:"totalScore" json:"totalScore"` // Uncapped raw sum, rounded
	ProteinScore      float64 `bson:"proteinScore" json:"proteinScore"`
	WaterScore        float64 `bson:"waterScore" json:"waterScore"`
	FatScore          float64 `bson:"fatScore" json:"fatScore"`
	CarbScore         float64 `bson:"carbScore" json:"carbScore"`
	DurationPoints    float64 `bson:"durationPoints" json:"durationPoints"`
	ConsistencyPoints float64 `bson:"consistencyPoints" json:"consistencyPoints"`
	IntensityPoints   float64 `bson:"intensityPoints" json:"intensityPoints"`
	FailurePoints     float64 `bson:"failurePoints" json:"failurePoints"`
	ActionPoints      float64 `bson:"actionPoints" json:"actionPoints"`

	ComputedAt time.Time `bson:"computedAt" json:"computedAt"`
}
