package domain_test

import (
	"testing"
	"time"

	"nutriwings/health-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSleepEntry_EffectiveTimestamp(t *testing.T) {
	created := time.Date(2025, 3, 10, 8, 15, 0, 0, time.UTC)
	start := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	objID := primitive.NewObjectIDFromTimestamp(time.Date(2025, 3, 10, 7, 5, 0, 0, time.UTC))

	t.Run("prefers explicit creation time", func(t *testing.T) {
		e := domain.SleepEntry{ID: objID, CreatedAt: created, StartTime: &start, EndTime: &end}
		assert.Equal(t, created, e.EffectiveTimestamp())
	})

	t.Run("falls back to end time", func(t *testing.T) {
		e := domain.SleepEntry{ID: objID, StartTime: &start, EndTime: &end}
		assert.Equal(t, end, e.EffectiveTimestamp())
	})

	t.Run("falls back to start time", func(t *testing.T) {
		e := domain.SleepEntry{ID: objID, StartTime: &start}
		assert.Equal(t, start, e.EffectiveTimestamp())
	})

	t.Run("falls back to ObjectID timestamp", func(t *testing.T) {
		e := domain.SleepEntry{ID: objID}
		got := e.EffectiveTimestamp()
		// ObjectID timestamps have second precision.
		assert.WithinDuration(t, objID.Timestamp(), got, time.Second)
	})
}

func TestSleepEntry_Running(t *testing.T) {
	start := time.Now()
	end := start.Add(8 * time.Hour)

	assert.True(t, (&domain.SleepEntry{StartTime: &start}).Running())
	assert.False(t, (&domain.SleepEntry{StartTime: &start, EndTime: &end}).Running())
	assert.False(t, (&domain.SleepEntry{DurationSeconds: 28800}).Running()) // manual entry
}

func TestDayBounds(t *testing.T) {
	start, end := domain.DayBounds(time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 1, 23, 59, 59, 999000000, time.UTC), end)

	lastMillisecond := time.Date(2025, 6, 1, 23, 59, 59, 999000000, time.UTC)
	nextMidnight := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, domain.InDay(lastMillisecond, start, end))
	assert.True(t, domain.InDay(start, start, end))
	assert.False(t, domain.InDay(nextMidnight, start, end))
}
