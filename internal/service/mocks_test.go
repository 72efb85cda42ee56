package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutriwings/health-app/internal/domain"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockDietRepo struct {
	mock.Mock
}

func (m *MockDietRepo) Create(ctx context.Context, entry *domain.DietEntry) (primitive.ObjectID, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockDietRepo) GetByDietID(ctx context.Context, userID primitive.ObjectID, dietID string) (*domain.DietEntry, error) {
	args := m.Called(ctx, userID, dietID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DietEntry), args.Error(1)
}

func (m *MockDietRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.DietEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DietEntry), args.Error(1)
}

func (m *MockDietRepo) GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.DietEntry, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DietEntry), args.Error(1)
}

func (m *MockDietRepo) Update(ctx context.Context, entry *domain.DietEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDietRepo) Delete(ctx context.Context, userID primitive.ObjectID, dietID string) error {
	args := m.Called(ctx, userID, dietID)
	return args.Error(0)
}

type MockSleepRepo struct {
	mock.Mock
}

func (m *MockSleepRepo) Create(ctx context.Context, entry *domain.SleepEntry) (primitive.ObjectID, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockSleepRepo) GetLatest(ctx context.Context, userID primitive.ObjectID) (*domain.SleepEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SleepEntry), args.Error(1)
}

func (m *MockSleepRepo) GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.SleepEntry, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SleepEntry), args.Error(1)
}

func (m *MockSleepRepo) Update(ctx context.Context, entry *domain.SleepEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockSleepRepo) Delete(ctx context.Context, userID, entryID primitive.ObjectID) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

type MockWaterRepo struct {
	mock.Mock
}

func (m *MockWaterRepo) Create(ctx context.Context, entry *domain.WaterEntry) (primitive.ObjectID, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockWaterRepo) GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WaterEntry, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaterEntry), args.Error(1)
}

func (m *MockWaterRepo) Delete(ctx context.Context, userID, entryID primitive.ObjectID) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

type MockWorkoutRepo struct {
	mock.Mock
}

func (m *MockWorkoutRepo) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutSession), args.Error(1)
}

func (m *MockWorkoutRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutSession), args.Error(1)
}

func (m *MockWorkoutRepo) GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutSession, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutSession), args.Error(1)
}

func (m *MockWorkoutRepo) ReplaceUnits(ctx context.Context, sessionID, userID primitive.ObjectID, units []domain.WorkoutUnit) error {
	args := m.Called(ctx, sessionID, userID, units)
	return args.Error(0)
}

func (m *MockWorkoutRepo) Delete(ctx context.Context, sessionID, userID primitive.ObjectID) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

type MockScoreRepo struct {
	mock.Mock
}

func (m *MockScoreRepo) ReplaceForDate(ctx context.Context, score *domain.StrengthScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockScoreRepo) FindByDate(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (*domain.StrengthScore, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StrengthScore), args.Error(1)
}

func (m *MockScoreRepo) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthScore, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StrengthScore), args.Error(1)
}

type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	args := m.Called(ctx, template)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTemplateRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutTemplate), args.Error(1)
}

func (m *MockTemplateRepo) GetAll(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutTemplate), args.Error(1)
}

func (m *MockTemplateRepo) Update(ctx context.Context, template *domain.WorkoutTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}
