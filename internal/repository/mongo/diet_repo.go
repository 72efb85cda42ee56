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

const dietCollectionName = "diet_entries"

// mongoDietRepository implements repository.DietRepository
type mongoDietRepository struct {
	collection *mongo.Collection
}

// NewMongoDietRepository creates a new diet-entry repository backed by MongoDB.
func NewMongoDietRepository(db *mongo.Database) repository.DietRepository {
	return &mongoDietRepository{
		collection: db.Collection(dietCollectionName),
	}
}

// Create inserts a new diet entry.
func (r *mongoDietRepository) Create(ctx context.Context, entry *domain.DietEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.DietID == "" {
		return primitive.NilObjectID, errors.New("diet entry requires userId and dietId")
	}

	entry.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted diet entry ID")
	}
	return insertedID, nil
}

// GetByDietID retrieves one entry by its external diet identifier.
func (r *mongoDietRepository) GetByDietID(ctx context.Context, userID primitive.ObjectID, dietID string) (*domain.DietEntry, error) {
	var entry domain.DietEntry
	filter := bson.M{"userId": userID, "dietId": dietID}

	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetByUserID retrieves a user's full diet history, newest first.
func (r *mongoDietRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.DietEntry, error) {
	var entries []domain.DietEntry
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

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
		entries = []domain.DietEntry{}
	}
	return entries, nil
}

// GetInRange retrieves entries whose date falls inside [start, end].
func (r *mongoDietRepository) GetInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.DietEntry, error) {
	var entries []domain.DietEntry
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": start, "$lte": end},
	}

	cursor, err := r.collection.Find(ctx, filter)
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
		entries = []domain.DietEntry{}
	}
	return entries, nil
}

// Update overwrites the editable fields of an entry, matched by dietId.
func (r *mongoDietRepository) Update(ctx context.Context, entry *domain.DietEntry) error {
	if entry.UserID == primitive.NilObjectID || entry.DietID == "" {
		return errors.New("diet entry userId and dietId are required for update")
	}

	filter := bson.M{"userId": entry.UserID, "dietId": entry.DietID}
	update := bson.M{
		"$set": bson.M{
			"foodName":      entry.FoodName,
			"date":          entry.Date,
			"time":          entry.Time,
			"status":        entry.Status,
			"portionSize":   entry.PortionSize,
			"totalCalories": entry.TotalCalories,
			"carbs":         entry.Carbs,
			"protein":       entry.Protein,
			"fats":          entry.Fats,
			"imageUrl":      entry.ImageURL,
			"taken":         entry.Taken,
			"updatedAt":     time.Now().UTC(),
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

// Delete removes one entry by its external diet identifier.
func (r *mongoDietRepository) Delete(ctx context.Context, userID primitive.ObjectID, dietID string) error {
	filter := bson.M{"userId": userID, "dietId": dietID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureDietIndexes creates necessary indexes. Call during startup.
func EnsureDietIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Range queries per user per day
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "dietId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	// Non-fatal: the unique (userId, dietId) guarantee is lost without the
	// index, but all queries still function.
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
