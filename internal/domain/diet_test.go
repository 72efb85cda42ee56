package domain_test

import (
	"testing"

	"nutriwings/health-app/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDietEntry_ProrateTaken(t *testing.T) {
	entry := domain.DietEntry{
		PortionSize:   200,
		TotalCalories: 500,
		Carbs:         60,
		Protein:       30,
		Fats:          10,
	}

	t.Run("half portion halves the macros", func(t *testing.T) {
		e := entry
		e.ProrateTaken(100)
		assert.Equal(t, 250.0, e.Taken.Calories)
		assert.Equal(t, 30.0, e.Taken.Carbs)
		assert.Equal(t, 15.0, e.Taken.Protein)
		assert.Equal(t, 5.0, e.Taken.Fats)
		assert.Equal(t, 100.0, e.Taken.PortionSize)
	})

	t.Run("results round to one decimal", func(t *testing.T) {
		e := entry
		e.ProrateTaken(66)
		assert.Equal(t, 165.0, e.Taken.Calories) // 0.33 * 500
		assert.Equal(t, 9.9, e.Taken.Protein)    // 0.33 * 30
	})

	t.Run("zero taken portion yields zero macros", func(t *testing.T) {
		e := entry
		e.ProrateTaken(0)
		assert.Zero(t, e.Taken.Calories)
		assert.Zero(t, e.Taken.Protein)
	})

	t.Run("zero logged portion yields zero macros, not a division error", func(t *testing.T) {
		e := entry
		e.PortionSize = 0
		e.ProrateTaken(150)
		assert.Zero(t, e.Taken.Calories)
		assert.Equal(t, 150.0, e.Taken.PortionSize)
	})
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 7.5, domain.Round1(7.5))
	assert.Equal(t, 13.3, domain.Round1(13.333333))
	assert.Equal(t, 0.0, domain.Round1(0))
}

func TestUser_BMI(t *testing.T) {
	u := domain.User{Health: domain.HealthDetails{WeightKg: 70, HeightCm: 175}}
	assert.Equal(t, 22.9, u.BMI())

	u.Health.HeightCm = 0
	assert.Zero(t, u.BMI())
}
