package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/repository"
	"nutriwings/health-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrDietNotFound     = errors.New("diet entry not found")
	ErrDietValidation   = errors.New("diet entry validation failed")
	ErrUploadURLError   = errors.New("failed to generate image upload URL")
	ErrInvalidImageType = errors.New("invalid or missing image content type")
)

// DietInput carries a logged meal before proration. PortionTaken is the
// amount actually eaten; the service derives the taken macros from it.
type DietInput struct {
	FoodName      string
	Date          time.Time
	Time          string
	Status        domain.DietStatus
	PortionSize   float64
	PortionTaken  float64
	TotalCalories float64
	Carbs         float64
	Protein       float64
	Fats          float64
	ImageURL      string
}

// DietStats is the per-day macro summary for the dashboard.
type DietStats struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalFats     float64 `json:"totalFats"`
}

// ImageUploadTicket is a presigned PUT URL plus the object key the client
// must echo back once the upload succeeds.
type ImageUploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type DietService interface {
	LogDiet(ctx context.Context, userID primitive.ObjectID, input DietInput) (*domain.DietEntry, error)
	GetDiet(ctx context.Context, userID primitive.ObjectID, dietID string) (*domain.DietEntry, error)
	GetHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.DietEntry, error)
	UpdateDiet(ctx context.Context, userID primitive.ObjectID, dietID string, input DietInput) (*domain.DietEntry, error)
	DeleteDiet(ctx context.Context, userID primitive.ObjectID, dietID string) error
	StatsForDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*DietStats, error)
	CalorieDataForMonth(ctx context.Context, userID primitive.ObjectID, year int, month time.Month) (map[string]float64, error)
	RecommendedCalories(ctx context.Context, userID primitive.ObjectID) (float64, error)
	FoodImageUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*ImageUploadTicket, error)
}

// dietService implements the DietService interface.
type dietService struct {
	dietRepo    repository.DietRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewDietService creates a new instance of dietService.
func NewDietService(dietRepo repository.DietRepository, userRepo repository.UserRepository, fileStorage storage.FileStorage) DietService {
	return &dietService{
		dietRepo:    dietRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// LogDiet validates, prorates and stores one meal.
func (s *dietService) LogDiet(ctx context.Context, userID primitive.ObjectID, input DietInput) (*domain.DietEntry, error) {
	if input.Date.IsZero() || input.Time == "" {
		return nil, ErrDietValidation
	}
	if input.Status == "" {
		input.Status = domain.DietStatusSaved
	}

	// The user must exist before anything is written.
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entry := &domain.DietEntry{
		UserID:        userID,
		DietID:        uuid.NewString(),
		FoodName:      input.FoodName,
		Date:          input.Date,
		Time:          input.Time,
		Status:        input.Status,
		PortionSize:   domain.Round1(input.PortionSize),
		TotalCalories: domain.Round1(input.TotalCalories),
		Carbs:         domain.Round1(input.Carbs),
		Protein:       domain.Round1(input.Protein),
		Fats:          domain.Round1(input.Fats),
		ImageURL:      input.ImageURL,
	}
	entry.ProrateTaken(input.PortionTaken)

	entryID, err := s.dietRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

// GetDiet retrieves a single entry by its external identifier.
func (s *dietService) GetDiet(ctx context.Context, userID primitive.ObjectID, dietID string) (*domain.DietEntry, error) {
	entry, err := s.dietRepo.GetByDietID(ctx, userID, dietID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDietNotFound
		}
		return nil, err
	}
	return entry, nil
}

// GetHistory returns the user's full diet log, newest first.
func (s *dietService) GetHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.DietEntry, error) {
	return s.dietRepo.GetByUserID(ctx, userID)
}

// UpdateDiet overwrites an entry and re-derives the taken macros.
func (s *dietService) UpdateDiet(ctx context.Context, userID primitive.ObjectID, dietID string, input DietInput) (*domain.DietEntry, error) {
	entry, err := s.dietRepo.GetByDietID(ctx, userID, dietID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDietNotFound
		}
		return nil, err
	}

	// Only "Draft" and "Saved" survive an edit; quick-logged meals become saved.
	status := input.Status
	if status != domain.DietStatusDraft && status != domain.DietStatusSaved {
		status = domain.DietStatusSaved
	}

	entry.FoodName = input.FoodName
	if !input.Date.IsZero() {
		entry.Date = input.Date
	}
	if input.Time != "" {
		entry.Time = input.Time
	}
	entry.Status = status
	entry.PortionSize = domain.Round1(input.PortionSize)
	entry.TotalCalories = domain.Round1(input.TotalCalories)
	entry.Carbs = domain.Round1(input.Carbs)
	entry.Protein = domain.Round1(input.Protein)
	entry.Fats = domain.Round1(input.Fats)
	if input.ImageURL != "" {
		entry.ImageURL = input.ImageURL
	}
	entry.ProrateTaken(input.PortionTaken)

	if err := s.dietRepo.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDietNotFound
		}
		return nil, err
	}
	return entry, nil
}

// DeleteDiet removes one entry.
func (s *dietService) DeleteDiet(ctx context.Context, userID primitive.ObjectID, dietID string) error {
	err := s.dietRepo.Delete(ctx, userID, dietID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDietNotFound
	}
	return err
}

// StatsForDate sums the taken macros of all entries on one calendar day.
func (s *dietService) StatsForDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*DietStats, error) {
	start, end := domain.DayBounds(date)
	entries, err := s.dietRepo.GetInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	stats := &DietStats{}
	for _, e := range entries {
		stats.TotalCalories += e.Taken.Calories
		stats.TotalCarbs += e.Taken.Carbs
		stats.TotalProtein += e.Taken.Protein
		stats.TotalFats += e.Taken.Fats
	}
	stats.TotalCalories = domain.Round1(stats.TotalCalories)
	stats.TotalCarbs = domain.Round1(stats.TotalCarbs)
	stats.TotalProtein = domain.Round1(stats.TotalProtein)
	stats.TotalFats = domain.Round1(stats.TotalFats)
	return stats, nil
}

// CalorieDataForMonth returns taken calories per day ("2006-01-02" keys)
// for the calendar heat-map.
func (s *dietService) CalorieDataForMonth(ctx context.Context, userID primitive.ObjectID, year int, month time.Month) (map[string]float64, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Millisecond)

	entries, err := s.dietRepo.GetInRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	data := make(map[string]float64)
	for _, e := range entries {
		key := e.Date.Format("2006-01-02")
		data[key] = domain.Round1(data[key] + e.Taken.Calories)
	}
	return data, nil
}

// RecommendedCalories reads the stored daily calorie target.
func (s *dietService) RecommendedCalories(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.Health.RecommendedCal, nil
}

// FoodImageUploadURL issues a presigned PUT URL on the asset host for a
// food photo. The client uploads directly and stores the resulting URL on
// the diet entry.
func (s *dietService) FoodImageUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*ImageUploadTicket, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidImageType
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("diet-images", userID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &ImageUploadTicket{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}
