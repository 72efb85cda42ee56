package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/repository"
	"nutriwings/health-app/internal/service"
)

type recoveryFixture struct {
	userRepo  *MockUserRepo
	sleepRepo *MockSleepRepo
	waterRepo *MockWaterRepo
	svc       service.RecoveryService
}

func newRecoveryFixture(userID primitive.ObjectID) *recoveryFixture {
	f := &recoveryFixture{
		userRepo:  new(MockUserRepo),
		sleepRepo: new(MockSleepRepo),
		waterRepo: new(MockWaterRepo),
	}
	f.userRepo.On("GetByID", mock.Anything, userID).Return(memberUser(userID, 70), nil)
	f.svc = service.NewRecoveryService(f.userRepo, f.sleepRepo, f.waterRepo)
	return f
}

func TestStartStopSleep(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("start opens a running timer", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		f.sleepRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SleepEntry")).Return(primitive.NewObjectID(), nil)

		entry, err := f.svc.StartSleep(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, entry.Running())
		assert.Nil(t, entry.EndTime)
		assert.Zero(t, entry.DurationSeconds)
	})

	t.Run("stop closes the timer and records whole seconds", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		start := time.Now().UTC().Add(-90 * time.Minute)
		running := &domain.SleepEntry{ID: primitive.NewObjectID(), UserID: userID, StartTime: &start}

		f.sleepRepo.On("GetLatest", mock.Anything, userID).Return(running, nil)
		f.sleepRepo.On("Update", mock.Anything, running).Return(nil)

		entry, err := f.svc.StopSleep(context.Background(), userID)
		require.NoError(t, err)
		assert.False(t, entry.Running())
		assert.InDelta(t, int64(90*60), entry.DurationSeconds, 2)
	})

	t.Run("stop without a running timer fails", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		done := &domain.SleepEntry{ID: primitive.NewObjectID(), UserID: userID, DurationSeconds: 3600}
		f.sleepRepo.On("GetLatest", mock.Anything, userID).Return(done, nil)

		_, err := f.svc.StopSleep(context.Background(), userID)
		assert.ErrorIs(t, err, service.ErrNoActiveSleep)
	})

	t.Run("stop with an empty log fails", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		f.sleepRepo.On("GetLatest", mock.Anything, userID).Return(nil, repository.ErrNotFound)

		_, err := f.svc.StopSleep(context.Background(), userID)
		assert.ErrorIs(t, err, service.ErrNoActiveSleep)
	})
}

func TestManualSleepEntry(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("records duration without a start time", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		f.sleepRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SleepEntry")).Return(primitive.NewObjectID(), nil)

		entry, err := f.svc.ManualSleepEntry(context.Background(), userID, 6*3600, nil)
		require.NoError(t, err)
		assert.Nil(t, entry.StartTime)
		assert.Equal(t, int64(6*3600), entry.DurationSeconds)
		assert.False(t, entry.Running())
	})

	t.Run("rejects non-positive durations", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		_, err := f.svc.ManualSleepEntry(context.Background(), userID, 0, nil)
		assert.Error(t, err)
		f.sleepRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLatestSleep_AutoStopsStaleTimer(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("timer past twelve hours is closed with a ten hour credit", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		start := time.Now().UTC().Add(-13 * time.Hour)
		stale := &domain.SleepEntry{ID: primitive.NewObjectID(), UserID: userID, StartTime: &start}

		f.sleepRepo.On("GetLatest", mock.Anything, userID).Return(stale, nil)
		f.sleepRepo.On("Update", mock.Anything, stale).Return(nil)

		entry, err := f.svc.LatestSleep(context.Background(), userID)
		require.NoError(t, err)
		assert.False(t, entry.Running())
		assert.Equal(t, int64(10*3600), entry.DurationSeconds)
		f.sleepRepo.AssertCalled(t, "Update", mock.Anything, stale)
	})

	t.Run("recently started timer is left running", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		start := time.Now().UTC().Add(-2 * time.Hour)
		running := &domain.SleepEntry{ID: primitive.NewObjectID(), UserID: userID, StartTime: &start}

		f.sleepRepo.On("GetLatest", mock.Anything, userID).Return(running, nil)

		entry, err := f.svc.LatestSleep(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, entry.Running())
		f.sleepRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestTodaySleep(t *testing.T) {
	userID := primitive.NewObjectID()
	f := newRecoveryFixture(userID)

	// A still-running timer contributes nothing until stopped.
	start := time.Now().UTC().Add(-time.Hour)
	f.sleepRepo.On("GetInRange", mock.Anything, userID, mock.Anything, mock.Anything).Return([]domain.SleepEntry{
		{DurationSeconds: 5 * 3600},
		{StartTime: &start},
		{DurationSeconds: 90 * 60},
	}, nil)

	entries, err := f.svc.TodaySleepEntries(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	total, err := f.svc.TodaySleepTotal(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5*3600+90*60), total)
}

func TestWaterLog(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("add appends one drink", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		f.waterRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WaterEntry")).Return(primitive.NewObjectID(), nil)

		entry, err := f.svc.AddWater(context.Background(), userID, 250)
		require.NoError(t, err)
		assert.Equal(t, 250.0, entry.Milliliters)
		assert.False(t, entry.RecordedAt.IsZero())
	})

	t.Run("rejects non-positive volumes", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		_, err := f.svc.AddWater(context.Background(), userID, 0)
		assert.ErrorIs(t, err, service.ErrWaterValidation)
		f.waterRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("delete maps a missing entry", func(t *testing.T) {
		f := newRecoveryFixture(userID)
		entryID := primitive.NewObjectID()
		f.waterRepo.On("Delete", mock.Anything, userID, entryID).Return(repository.ErrNotFound)

		err := f.svc.DeleteWaterEntry(context.Background(), userID, entryID)
		assert.ErrorIs(t, err, service.ErrWaterEntryNotFound)
	})
}
