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

const waterCollectionName = "water_entries"

// mongoWaterRepository implements repository.WaterRepository
type mongoWaterRepository struct {
	collection *mongo.Collection
}

// NewMongoWaterRepository creates a new water-entry repository backed by MongoDB.
func NewMongoWaterRepository(db *mongo.Database) repository.WaterRepository {
	return &mongoWaterRepository{
		collection: db.Collection(waterCollectionName),
	}
}

// Create appends a new water entry.
func (r *mongoWaterRepository) Create(ctx context.Context, entry *domain.WaterEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.Milliliters <= 0 {
		return primitive.NilObjectID, errors.New("water entry requires userId and a positive volume")
	}

	entry.ID = primitive.NewObjectID()
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted water entry ID")
	}
	return insertedID, nil
}

// GetInRange returns entries recorded inside [start, end], oldest first.
func (r *mongoWaterRepository) GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WaterEntry, error) {
	var entries []domain.WaterEntry
	filter := bson.M{
		"userId":     userID,
		"recordedAt": bson.M{"$gte": start, "$lte": end},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.WaterEntry{}
	}
	return entries, nil
}

// Delete removes one entry, scoped to the owning user.
func (r *mongoWaterRepository) Delete(ctx context.Context, userID, entryID primitive.ObjectID) error {
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

// EnsureWaterIndexes creates necessary indexes. Call during startup.
func EnsureWaterIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "recordedAt", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
