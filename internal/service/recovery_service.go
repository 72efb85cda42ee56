package service

import (
	"context"
	"errors"
	"time"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoActiveSleep     = errors.New("no active sleep tracking session")
	ErrSleepEntryNotFound = errors.New("sleep entry not found")
	ErrWaterEntryNotFound = errors.New("water entry not found")
	ErrWaterValidation    = errors.New("water volume must be positive")
)

// A timer left running this long is assumed abandoned and auto-closed with
// a capped credited duration.
const (
	staleSleepAfter    = 12 * time.Hour
	staleSleepCredited = 10 * time.Hour
)

type RecoveryService interface {
	StartSleep(ctx context.Context, userID primitive.ObjectID) (*domain.SleepEntry, error)
	StopSleep(ctx context.Context, userID primitive.ObjectID) (*domain.SleepEntry, error)
	ManualSleepEntry(ctx context.Context, userID primitive.ObjectID, durationSeconds int64, endTime *time.Time) (*domain.SleepEntry, error)
	LatestSleep(ctx context.Context, userID primitive.ObjectID) (*domain.SleepEntry, error)
	TodaySleepEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.SleepEntry, error)
	TodaySleepTotal(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteSleepEntry(ctx context.Context, userID, entryID primitive.ObjectID) error

	AddWater(ctx context.Context, userID primitive.ObjectID, milliliters float64) (*domain.WaterEntry, error)
	TodayWaterEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.WaterEntry, error)
	DeleteWaterEntry(ctx context.Context, userID, entryID primitive.ObjectID) error
}

// recoveryService implements the RecoveryService interface covering the
// sleep and water logs.
type recoveryService struct {
	userRepo  repository.UserRepository
	sleepRepo repository.SleepRepository
	waterRepo repository.WaterRepository
}

// NewRecoveryService creates a new instance of recoveryService.
func NewRecoveryService(userRepo repository.UserRepository, sleepRepo repository.SleepRepository, waterRepo repository.WaterRepository) RecoveryService {
	return &recoveryService{
		userRepo:  userRepo,
		sleepRepo: sleepRepo,
		waterRepo: waterRepo,
	}
}

func (s *recoveryService) requireUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// StartSleep opens a running timer entry.
func (s *recoveryService) StartSleep(ctx context.Context, userID primitive.ObjectID) (*domain.SleepEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &domain.SleepEntry{
		UserID:    userID,
		StartTime: &now,
		CreatedAt: now,
	}

	entryID, err := s.sleepRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

// StopSleep closes the latest running timer and records its duration in
// whole seconds.
func (s *recoveryService) StopSleep(ctx context.Context, userID primitive.ObjectID) (*domain.SleepEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	latest, err := s.sleepRepo.GetLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveSleep
		}
		return nil, err
	}
	if !latest.Running() {
		return nil, ErrNoActiveSleep
	}

	now := time.Now().UTC()
	latest.EndTime = &now
	latest.DurationSeconds = int64(now.Sub(*latest.StartTime).Seconds())

	if err := s.sleepRepo.Update(ctx, latest); err != nil {
		return nil, err
	}
	return latest, nil
}

// ManualSleepEntry records a sleep interval with a caller-supplied duration
// and no start time.
func (s *recoveryService) ManualSleepEntry(ctx context.Context, userID primitive.ObjectID, durationSeconds int64, endTime *time.Time) (*domain.SleepEntry, error) {
	if durationSeconds <= 0 {
		return nil, errors.New("sleep duration must be positive")
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	entry := &domain.SleepEntry{
		UserID:          userID,
		EndTime:         endTime,
		DurationSeconds: durationSeconds,
		CreatedAt:       time.Now().UTC(),
	}

	entryID, err := s.sleepRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

// LatestSleep returns the most recent entry. A timer that has been running
// for 12 hours or more is assumed forgotten: it is closed in place with a
// credited duration of 10 hours before being returned.
func (s *recoveryService) LatestSleep(ctx context.Context, userID primitive.ObjectID) (*domain.SleepEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	latest, err := s.sleepRepo.GetLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSleepEntryNotFound
		}
		return nil, err
	}

	if latest.Running() {
		now := time.Now().UTC()
		if now.Sub(*latest.StartTime) >= staleSleepAfter {
			latest.EndTime = &now
			latest.DurationSeconds = int64(staleSleepCredited.Seconds())
			if err := s.sleepRepo.Update(ctx, latest); err != nil {
				return nil, err
			}
		}
	}
	return latest, nil
}

// TodaySleepEntries returns today's completed entries (positive duration).
func (s *recoveryService) TodaySleepEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.SleepEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	start, end := domain.DayBounds(time.Now())
	entries, err := s.sleepRepo.GetInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	completed := make([]domain.SleepEntry, 0, len(entries))
	for _, e := range entries {
		if e.DurationSeconds > 0 {
			completed = append(completed, e)
		}
	}
	return completed, nil
}

// TodaySleepTotal sums today's completed sleep durations in seconds.
func (s *recoveryService) TodaySleepTotal(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	entries, err := s.TodaySleepEntries(ctx, userID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range entries {
		total += e.DurationSeconds
	}
	return total, nil
}

// DeleteSleepEntry removes one entry.
func (s *recoveryService) DeleteSleepEntry(ctx context.Context, userID, entryID primitive.ObjectID) error {
	err := s.sleepRepo.Delete(ctx, userID, entryID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSleepEntryNotFound
	}
	return err
}

// AddWater appends one drink to the water log.
func (s *recoveryService) AddWater(ctx context.Context, userID primitive.ObjectID, milliliters float64) (*domain.WaterEntry, error) {
	if milliliters <= 0 {
		return nil, ErrWaterValidation
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	entry := &domain.WaterEntry{
		UserID:      userID,
		RecordedAt:  time.Now().UTC(),
		Milliliters: milliliters,
	}

	entryID, err := s.waterRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

// TodayWaterEntries returns today's water log.
func (s *recoveryService) TodayWaterEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.WaterEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	start, end := domain.DayBounds(time.Now())
	return s.waterRepo.GetInRange(ctx, userID, start, end)
}

// DeleteWaterEntry removes one entry.
func (s *recoveryService) DeleteWaterEntry(ctx context.Context, userID, entryID primitive.ObjectID) error {
	err := s.waterRepo.Delete(ctx, userID, entryID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWaterEntryNotFound
	}
	return err
}
