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

const sleepCollectionName = "sleep_entries"

// mongoSleepRepository implements repository.SleepRepository
type mongoSleepRepository struct {
	collection *mongo.Collection
}

// NewMongoSleepRepository creates a new sleep-entry repository backed by MongoDB.
func NewMongoSleepRepository(db *mongo.Database) repository.SleepRepository {
	return &mongoSleepRepository{
		collection: db.Collection(sleepCollectionName),
	}
}

// Create inserts a new sleep entry (running timer or manual record).
func (r *mongoSleepRepository) Create(ctx context.Context, entry *domain.SleepEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("sleep entry requires userId")
	}

	entry.ID = primitive.NewObjectID()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted sleep entry ID")
	}
	return insertedID, nil
}

// GetLatest returns the most recently created entry for the user.
func (r *mongoSleepRepository) GetLatest(ctx context.Context, userID primitive.ObjectID) (*domain.SleepEntry, error) {
	var entry domain.SleepEntry
	filter := bson.M{"userId": userID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetInRange returns entries whose effective timestamp falls inside
// [start, end]. Manual entries carry no start time and legacy records may
// lack createdAt, so the fallback chain cannot be expressed as a single
// Mongo filter; candidates are fetched by user and filtered in memory.
func (r *mongoSleepRepository) GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.SleepEntry, error) {
	filter := bson.M{"userId": userID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []domain.SleepEntry
	if err = cursor.All(ctx, &all); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	entries := make([]domain.SleepEntry, 0, len(all))
	for _, e := range all {
		if domain.InDay(e.EffectiveTimestamp(), start, end) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Update overwrites the timer fields of an entry (used when stopping a
// running timer or auto-closing a stale one).
func (r *mongoSleepRepository) Update(ctx context.Context, entry *domain.SleepEntry) error {
	if entry.ID == primitive.NilObjectID {
		return errors.New("sleep entry ID is required for update")
	}

	filter := bson.M{"_id": entry.ID, "userId": entry.UserID}
	update := bson.M{
		"$set": bson.M{
			"startTime":       entry.StartTime,
			"endTime":         entry.EndTime,
			"durationSeconds": entry.DurationSeconds,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes one entry, scoped to the owning user.
func (r *mongoSleepRepository) Delete(ctx context.Context, userID, entryID primitive.ObjectID) error {
	filter := bson.M{"_id": entryID, "userId": userID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSleepIndexes creates necessary indexes. Call during startup.
func EnsureSleepIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
