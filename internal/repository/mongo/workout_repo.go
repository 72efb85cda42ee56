package mongo

import (
	"context"
	"errors"
	"time"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workout_sessions"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new workout-session repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout session.
func (r *mongoWorkoutRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.UserID == primitive.NilObjectID || len(session.Workouts) == 0 {
		return primitive.NilObjectID, errors.New("workout session requires userId and at least one workout unit")
	}

	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now().UTC()
	if session.StartTime.IsZero() {
		session.StartTime = session.CreatedAt
	}

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single session by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByUserID retrieves a user's full session history, newest first.
func (r *mongoWorkoutRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	var sessions []domain.WorkoutSession
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	return sessions, nil
}

// GetInRange retrieves sessions whose start time falls inside [start, end],
// ordered oldest first. Callers that need "most recent similar workout"
// walk the slice backwards.
func (r *mongoWorkoutRepository) GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutSession, error) {
	var sessions []domain.WorkoutSession
	filter := bson.M{
		"userId":    userID,
		"startTime": bson.M{"$gte": start, "$lte": end},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	return sessions, nil
}

// ReplaceUnits overwrites the workout units of a session, scoped to the
// owning user. Used for per-set edits and deletions.
func (r *mongoWorkoutRepository) ReplaceUnits(ctx context.Context, sessionID, userID primitive.ObjectID, units []domain.WorkoutUnit) error {
	if sessionID == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("session ID and user ID are required")
	}

	filter := bson.M{"_id": sessionID, "userId": userID}
	update := bson.M{"$set": bson.M{"workouts": units}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an entire session, scoped to the owning user.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, sessionID, userID primitive.ObjectID) error {
	if sessionID == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("session ID and user ID are required for deletion")
	}

	filter := bson.M{"_id": sessionID, "userId": userID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Range queries per user over session start time
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
