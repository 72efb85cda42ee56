package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SleepEntry records one sleep interval. Two creation paths exist: a running
// timer (start set, end filled on stop) and a manual entry (duration supplied
// directly, no start). Either form is valid; consumers rely only on
// DurationSeconds and EffectiveTimestamp.
type SleepEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	StartTime       *time.Time         `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime         *time.Time         `bson:"endTime,omitempty" json:"endTime,omitempty"`
	DurationSeconds int64              `bson:"durationSeconds" json:"durationSeconds"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// Running reports whether this entry is an open timer.
func (s *SleepEntry) Running() bool {
	return s.StartTime != nil && s.EndTime == nil
}

// EffectiveTimestamp resolves the instant a sleep entry counts towards.
// Precedence: explicit creation time, then end time, then start time, then
// the creation time encoded in the ObjectID. Older records predating the
// createdAt field still resolve through the later fallbacks.
func (s *SleepEntry) EffectiveTimestamp() time.Time {
	if !s.CreatedAt.IsZero() {
		return s.CreatedAt
	}
	if s.EndTime != nil {
		return *s.EndTime
	}
	if s.StartTime != nil {
		return *s.StartTime
	}
	return s.ID.Timestamp()
}

// WaterEntry is one logged drink in milliliters. Append-only.
type WaterEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	RecordedAt  time.Time          `bson:"recordedAt" json:"recordedAt"`
	Milliliters float64            `bson:"milliliters" json:"milliliters"`
}
