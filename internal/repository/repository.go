package repository

import (
	"context"
	"time"

	"nutriwings/health-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository is the profile store: account data plus the health
// attributes (weight, recommended calories) the scoring engine reads.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// DietRepository is the diet log: append, edit and range queries over
// logged meals.
type DietRepository interface {
	Create(ctx context.Context, entry *domain.DietEntry) (primitive.ObjectID, error)
	GetByDietID(ctx context.Context, userID primitive.ObjectID, dietID string) (*domain.DietEntry, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.DietEntry, error)
	GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.DietEntry, error)
	Update(ctx context.Context, entry *domain.DietEntry) error
	Delete(ctx context.Context, userID primitive.ObjectID, dietID string) error
}

// SleepRepository is the sleep log. GetInRange filters by each entry's
// EffectiveTimestamp, not a single stored column, because manual entries
// carry no start time.
type SleepRepository interface {
	Create(ctx context.Context, entry *domain.SleepEntry) (primitive.ObjectID, error)
	GetLatest(ctx context.Context, userID primitive.ObjectID) (*domain.SleepEntry, error)
	GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.SleepEntry, error)
	Update(ctx context.Context, entry *domain.SleepEntry) error
	Delete(ctx context.Context, userID, entryID primitive.ObjectID) error
}

// WaterRepository is the append-only water log.
type WaterRepository interface {
	Create(ctx context.Context, entry *domain.WaterEntry) (primitive.ObjectID, error)
	GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WaterEntry, error)
	Delete(ctx context.Context, userID, entryID primitive.ObjectID) error
}

// WorkoutRepository stores workout sessions. GetInRange matches on session
// start time and returns sessions ordered oldest first.
type WorkoutRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutSession, error)
	ReplaceUnits(ctx context.Context, sessionID, userID primitive.ObjectID, units []domain.WorkoutUnit) error
	Delete(ctx context.Context, sessionID, userID primitive.ObjectID) error
}

// ScoreRepository is the keyed store for daily strength-score snapshots.
// ReplaceForDate is an atomic upsert on the (userId, day) key.
type ScoreRepository interface {
	ReplaceForDate(ctx context.Context, score *domain.StrengthScore) error
	FindByDate(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (*domain.StrengthScore, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthScore, error)
}

// TemplateRepository is the admin-managed workout-template catalog.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetAll(ctx context.Context) ([]domain.WorkoutTemplate, error)
	Update(ctx context.Context, template *domain.WorkoutTemplate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
