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
	ErrSessionNotFound   = errors.New("workout session not found")
	ErrActionNotFound    = errors.New("workout action not found")
	ErrSessionValidation = errors.New("workout session validation failed")
)

// WorkoutUnitInput is one exercise block inside a session save request.
type WorkoutUnitInput struct {
	Name     string
	Category string
	ImageURL string
	Actions  []domain.WorkoutAction
}

// ActionUpdateInput addresses a single set inside a saved session.
type ActionUpdateInput struct {
	UnitIndex int
	SetIndex  int
	Reps      int
	WeightKg  float64
	Failure   string
}

type WorkoutService interface {
	SaveSession(ctx context.Context, userID primitive.ObjectID, startTime time.Time, durationSeconds int64, units []WorkoutUnitInput) (*domain.WorkoutSession, error)
	GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	History(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	UpdateAction(ctx context.Context, userID, sessionID primitive.ObjectID, input ActionUpdateInput) (*domain.WorkoutSession, error)
	DeleteAction(ctx context.Context, userID, sessionID primitive.ObjectID, unitIndex, setIndex int) (*domain.WorkoutSession, error)
	DeleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) error
}

type workoutService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
	}
}

// SaveSession validates and persists a finished workout. Set indices are
// rewritten to a dense 1-based sequence in the order the client sent them.
func (s *workoutService) SaveSession(ctx context.Context, userID primitive.ObjectID, startTime time.Time, durationSeconds int64, units []WorkoutUnitInput) (*domain.WorkoutSession, error) {
	if durationSeconds < 0 || len(units) == 0 {
		return nil, ErrSessionValidation
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	session := &domain.WorkoutSession{
		UserID:          userID,
		StartTime:       startTime.UTC(),
		DurationSeconds: durationSeconds,
		Workouts:        make([]domain.WorkoutUnit, 0, len(units)),
		CreatedAt:       time.Now().UTC(),
	}

	for _, u := range units {
		if u.Name == "" {
			return nil, ErrSessionValidation
		}
		unit := domain.WorkoutUnit{
			Name:     u.Name,
			Category: u.Category,
			ImageURL: u.ImageURL,
			Actions:  make([]domain.WorkoutAction, 0, len(u.Actions)),
		}
		for i, a := range u.Actions {
			if a.Reps < 0 || a.WeightKg < 0 {
				return nil, ErrSessionValidation
			}
			if a.Failure == "" {
				a.Failure = domain.FailureNo
			}
			a.SetIndex = i + 1
			unit.Actions = append(unit.Actions, a)
		}
		session.Workouts = append(session.Workouts, unit)
	}

	sessionID, err := s.workoutRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID
	return session, nil
}

func (s *workoutService) GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.workoutRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// History returns the user's sessions, newest first.
func (s *workoutService) History(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.workoutRepo.GetByUserID(ctx, userID)
}

// UpdateAction corrects the reps, weight or failure flag of one set.
func (s *workoutService) UpdateAction(ctx context.Context, userID, sessionID primitive.ObjectID, input ActionUpdateInput) (*domain.WorkoutSession, error) {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if input.UnitIndex < 0 || input.UnitIndex >= len(session.Workouts) {
		return nil, ErrActionNotFound
	}
	unit := &session.Workouts[input.UnitIndex]

	found := false
	for i := range unit.Actions {
		if unit.Actions[i].SetIndex == input.SetIndex {
			if input.Reps < 0 || input.WeightKg < 0 {
				return nil, ErrSessionValidation
			}
			unit.Actions[i].Reps = input.Reps
			unit.Actions[i].WeightKg = input.WeightKg
			if input.Failure != "" {
				unit.Actions[i].Failure = input.Failure
			}
			found = true
			break
		}
	}
	if !found {
		return nil, ErrActionNotFound
	}

	if err := s.workoutRepo.ReplaceUnits(ctx, sessionID, userID, session.Workouts); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteAction removes one set and re-sequences the remaining sets of that
// exercise so indices stay dense and 1-based.
func (s *workoutService) DeleteAction(ctx context.Context, userID, sessionID primitive.ObjectID, unitIndex, setIndex int) (*domain.WorkoutSession, error) {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if unitIndex < 0 || unitIndex >= len(session.Workouts) {
		return nil, ErrActionNotFound
	}
	unit := &session.Workouts[unitIndex]

	kept := make([]domain.WorkoutAction, 0, len(unit.Actions))
	found := false
	for _, a := range unit.Actions {
		if a.SetIndex == setIndex {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return nil, ErrActionNotFound
	}
	for i := range kept {
		kept[i].SetIndex = i + 1
	}
	unit.Actions = kept

	if err := s.workoutRepo.ReplaceUnits(ctx, sessionID, userID, session.Workouts); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *workoutService) DeleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) error {
	err := s.workoutRepo.Delete(ctx, sessionID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
