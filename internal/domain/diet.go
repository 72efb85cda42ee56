package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DietStatus marks how a diet entry was captured in the UI.
type DietStatus string

const (
	DietStatusDraft DietStatus = "Draft"
	DietStatusSaved DietStatus = "Saved"
	DietStatusQuick DietStatus = "Quick"
)

// TakenMacros is the portion of a logged meal the user actually consumed,
// pre-prorated by the portion-size ratio when the entry is written. The
// scoring engine reads only this sub-object, never the raw meal values.
type TakenMacros struct {
	Calories    float64 `bson:"calories" json:"calories"`
	PortionSize float64 `bson:"portionSize" json:"portionSize"`
	Carbs       float64 `bson:"carbs" json:"carbs"`
	Protein     float64 `bson:"protein" json:"protein"`
	Fats        float64 `bson:"fats" json:"fats"`
}

// DietEntry is one logged meal. Entries are immutable from the engine's
// point of view; edits happen only through the diet service.
type DietEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	DietID        string             `bson:"dietId" json:"dietId"` // Stable external identifier
	FoodName      string             `bson:"foodName" json:"foodName"`
	Date          time.Time          `bson:"date" json:"date"`
	Time          string             `bson:"time" json:"time"` // Display time, e.g. "08:30"
	Status        DietStatus         `bson:"status" json:"status"`
	PortionSize   float64            `bson:"portionSize" json:"portionSize"`
	TotalCalories float64            `bson:"totalCalories" json:"totalCalories"`
	Carbs         float64            `bson:"carbs" json:"carbs"`
	Protein       float64            `bson:"protein" json:"protein"`
	Fats          float64            `bson:"fats" json:"fats"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Taken         TakenMacros        `bson:"taken" json:"taken"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProrateTaken fills Taken from the logged meal values and the portion
// actually eaten. A zero logged or taken portion yields all-zero taken
// macros rather than a division error.
func (d *DietEntry) ProrateTaken(portionTaken float64) {
	d.Taken = TakenMacros{PortionSize: Round1(portionTaken)}
	if portionTaken <= 0 || d.PortionSize <= 0 {
		return
	}
	ratio := portionTaken / d.PortionSize
	d.Taken.Calories = Round1(ratio * d.TotalCalories)
	d.Taken.Carbs = Round1(ratio * d.Carbs)
	d.Taken.Protein = Round1(ratio * d.Protein)
	d.Taken.Fats = Round1(ratio * d.Fats)
}
