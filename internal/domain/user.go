package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Lifestyle values accepted during registration. They select the activity
// factor applied to BMR when deriving the recommended daily calorie target.
const (
	LifestyleSedentary        = "Sedentary"
	LifestyleModeratelyActive = "Moderately Active"
	LifestyleActive           = "Active"
)

// HealthDetails holds the physical attributes the scoring engine and the
// diet module read. Weight is in kilograms, height in centimeters.
type HealthDetails struct {
	WeightKg       float64 `bson:"weightKg" json:"weightKg"`
	HeightCm       float64 `bson:"heightCm" json:"heightCm"`
	Lifestyle      string  `bson:"lifestyle" json:"lifestyle"`
	RecommendedCal float64 `bson:"recommendedCal" json:"recommendedCal"` // kcal/day, derived at registration
}

// User represents an account in the system.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Age          int                `bson:"age" json:"age"`
	Gender       string             `bson:"gender" json:"gender"`
	Mobile       string             `bson:"mobile" json:"mobile"`  // Unique login identifier
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Health       HealthDetails      `bson:"health" json:"health"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BMI returns the body mass index derived from the stored health details,
// rounded to one decimal place. Returns 0 when height is unset.
func (u *User) BMI() float64 {
	if u.Health.HeightCm <= 0 {
		return 0
	}
	heightM := u.Health.HeightCm / 100
	return Round1(u.Health.WeightKg / (heightM * heightM))
}
