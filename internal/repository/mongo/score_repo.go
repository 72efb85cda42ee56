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

const scoreCollectionName = "strength_scores"

// mongoScoreRepository implements repository.ScoreRepository. Scores live in
// their own collection keyed by (userId, date) with date normalized to the
// start of the day, so a same-day recomputation is a single atomic
// ReplaceOne upsert rather than a read-filter-write on an embedded array.
type mongoScoreRepository struct {
	collection *mongo.Collection
}

// NewMongoScoreRepository creates a new strength-score repository.
func NewMongoScoreRepository(db *mongo.Database) repository.ScoreRepository {
	return &mongoScoreRepository{
		collection: db.Collection(scoreCollectionName),
	}
}

// ReplaceForDate upserts the record for (score.UserID, score.Date). The date
// must already be day-truncated; the unique index makes concurrent writers
// last-writer-wins rather than duplicating records.
func (r *mongoScoreRepository) ReplaceForDate(ctx context.Context, score *domain.StrengthScore) error {
	if score.UserID == primitive.NilObjectID {
		return errors.New("strength score requires userId")
	}

	// The zero ID is omitted from the replacement document, so an existing
	// record keeps its _id and an upserted one gets a fresh one.
	filter := bson.M{"userId": score.UserID, "date": score.Date}
	replaceOptions := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, score, replaceOptions)
	return err
}

// FindByDate returns the record whose stored date falls inside [start, end].
func (r *mongoScoreRepository) FindByDate(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (*domain.StrengthScore, error) {
	var score domain.StrengthScore
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": start, "$lte": end},
	}

	err := r.collection.FindOne(ctx, filter).Decode(&score)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &score, nil
}

// ListByUserID returns every stored record for the user, oldest first.
func (r *mongoScoreRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthScore, error) {
	var scores []domain.StrengthScore
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if scores == nil {
		scores = []domain.StrengthScore{}
	}
	return scores, nil
}

// EnsureScoreIndexes creates the unique (userId, date) index that enforces
// at most one record per user per calendar day. Call during startup.
func EnsureScoreIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
