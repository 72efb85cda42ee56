package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Failure values for a set. Free text "yes"/"no" from the timer UI.
const (
	FailureYes = "yes"
	FailureNo  = "no"
)

// WorkoutAction is a single set within a workout unit. Actions are kept as
// an ordered sequence; SetIndex is re-assigned contiguously when a set is
// deleted so "set 3" always means the third remaining set.
type WorkoutAction struct {
	SetIndex int     `bson:"setIndex" json:"setIndex"`
	Reps     int     `bson:"reps" json:"reps"`
	WeightKg float64 `bson:"weightKg" json:"weightKg"`
	Failure  string  `bson:"failure" json:"failure"` // "yes" when the set was taken to failure
}

// WorkoutUnit is one movement performed during a session, e.g. "Bench Press"
// in category "Chest", with its ordered sets.
type WorkoutUnit struct {
	Name     string          `bson:"name" json:"name"`
	Category string          `bson:"category" json:"category"`
	ImageURL string          `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Actions  []WorkoutAction `bson:"actions" json:"actions"`
}

// WorkoutSession is one gym visit: a start instant, a total duration and the
// units performed. Timer-based and manually logged sessions share this shape.
type WorkoutSession struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	StartTime       time.Time          `bson:"startTime" json:"startTime"`
	DurationSeconds int64              `bson:"durationSeconds" json:"durationSeconds"`
	Workouts        []WorkoutUnit      `bson:"workouts" json:"workouts"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
