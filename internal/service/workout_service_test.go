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

type workoutFixture struct {
	userRepo    *MockUserRepo
	workoutRepo *MockWorkoutRepo
	svc         service.WorkoutService
}

func newWorkoutFixture(userID primitive.ObjectID) *workoutFixture {
	f := &workoutFixture{
		userRepo:    new(MockUserRepo),
		workoutRepo: new(MockWorkoutRepo),
	}
	f.userRepo.On("GetByID", mock.Anything, userID).Return(memberUser(userID, 70), nil)
	f.svc = service.NewWorkoutService(f.userRepo, f.workoutRepo)
	return f
}

func benchSession(userID primitive.ObjectID) *domain.WorkoutSession {
	return &domain.WorkoutSession{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		StartTime:       time.Now().Add(-time.Hour),
		DurationSeconds: 3600,
		Workouts: []domain.WorkoutUnit{{
			Name:     "Bench Press",
			Category: "Chest",
			Actions: []domain.WorkoutAction{
				{SetIndex: 1, Reps: 10, WeightKg: 60, Failure: domain.FailureNo},
				{SetIndex: 2, Reps: 8, WeightKg: 65, Failure: domain.FailureNo},
				{SetIndex: 3, Reps: 6, WeightKg: 70, Failure: domain.FailureYes},
			},
		}},
	}
}

func TestSaveSession(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("assigns dense one-based set indices", func(t *testing.T) {
		f := newWorkoutFixture(userID)

		var saved *domain.WorkoutSession
		f.workoutRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WorkoutSession")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.WorkoutSession) }).
			Return(primitive.NewObjectID(), nil)

		units := []service.WorkoutUnitInput{{
			Name:     "Deadlift",
			Category: "Back",
			Actions: []domain.WorkoutAction{
				{SetIndex: 7, Reps: 5, WeightKg: 120},
				{SetIndex: 2, Reps: 5, WeightKg: 125, Failure: domain.FailureYes},
			},
		}}

		session, err := f.svc.SaveSession(context.Background(), userID, time.Now(), 2400, units)
		require.NoError(t, err)
		require.NotNil(t, saved)

		actions := session.Workouts[0].Actions
		assert.Equal(t, 1, actions[0].SetIndex)
		assert.Equal(t, 2, actions[1].SetIndex)
		// Unset failure flags default to "no".
		assert.Equal(t, domain.FailureNo, actions[0].Failure)
		assert.Equal(t, domain.FailureYes, actions[1].Failure)
	})

	t.Run("rejects an empty session", func(t *testing.T) {
		f := newWorkoutFixture(userID)
		_, err := f.svc.SaveSession(context.Background(), userID, time.Now(), 2400, nil)
		assert.ErrorIs(t, err, service.ErrSessionValidation)
	})

	t.Run("rejects negative reps", func(t *testing.T) {
		f := newWorkoutFixture(userID)
		units := []service.WorkoutUnitInput{{
			Name:    "Squat",
			Actions: []domain.WorkoutAction{{Reps: -1}},
		}}
		_, err := f.svc.SaveSession(context.Background(), userID, time.Now(), 600, units)
		assert.ErrorIs(t, err, service.ErrSessionValidation)
		f.workoutRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetSession_OwnershipCheck(t *testing.T) {
	userID := primitive.NewObjectID()
	f := newWorkoutFixture(userID)

	other := benchSession(primitive.NewObjectID())
	f.workoutRepo.On("GetByID", mock.Anything, other.ID).Return(other, nil)

	// Someone else's session reads as absent, not as forbidden.
	_, err := f.svc.GetSession(context.Background(), userID, other.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestUpdateAction(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("rewrites one set in place", func(t *testing.T) {
		f := newWorkoutFixture(userID)
		session := benchSession(userID)

		f.workoutRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
		f.workoutRepo.On("ReplaceUnits", mock.Anything, session.ID, userID, mock.Anything).Return(nil)

		updated, err := f.svc.UpdateAction(context.Background(), userID, session.ID, service.ActionUpdateInput{
			UnitIndex: 0,
			SetIndex:  2,
			Reps:      9,
			WeightKg:  67.5,
			Failure:   domain.FailureYes,
		})
		require.NoError(t, err)

		got := updated.Workouts[0].Actions[1]
		assert.Equal(t, 9, got.Reps)
		assert.Equal(t, 67.5, got.WeightKg)
		assert.Equal(t, domain.FailureYes, got.Failure)
		// Neighbouring sets untouched.
		assert.Equal(t, 10, updated.Workouts[0].Actions[0].Reps)
	})

	t.Run("unknown set index", func(t *testing.T) {
		f := newWorkoutFixture(userID)
		session := benchSession(userID)
		f.workoutRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)

		_, err := f.svc.UpdateAction(context.Background(), userID, session.ID, service.ActionUpdateInput{
			UnitIndex: 0,
			SetIndex:  99,
			Reps:      5,
		})
		assert.ErrorIs(t, err, service.ErrActionNotFound)
		f.workoutRepo.AssertNotCalled(t, "ReplaceUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteAction_ResequencesSets(t *testing.T) {
	userID := primitive.NewObjectID()
	f := newWorkoutFixture(userID)
	session := benchSession(userID)

	f.workoutRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	f.workoutRepo.On("ReplaceUnits", mock.Anything, session.ID, userID, mock.Anything).Return(nil)

	updated, err := f.svc.DeleteAction(context.Background(), userID, session.ID, 0, 2)
	require.NoError(t, err)

	actions := updated.Workouts[0].Actions
	require.Len(t, actions, 2)
	// The former third set shifts down to index 2; "set 2" stays meaningful.
	assert.Equal(t, 1, actions[0].SetIndex)
	assert.Equal(t, 10, actions[0].Reps)
	assert.Equal(t, 2, actions[1].SetIndex)
	assert.Equal(t, 6, actions[1].Reps)
}

func TestDeleteSession(t *testing.T) {
	userID := primitive.NewObjectID()
	sessionID := primitive.NewObjectID()

	f := newWorkoutFixture(userID)
	f.workoutRepo.On("Delete", mock.Anything, sessionID, userID).Return(repository.ErrNotFound)

	err := f.svc.DeleteSession(context.Background(), userID, sessionID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}
