package mongo

import (
	"context"
	"errors"
	"time"

	"pitchplan/internal/domain"
	"pitchplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const completionCollectionName = "completions"

// mongoCompletionRepository implements repository.CompletionRepository
type mongoCompletionRepository struct {
	collection *mongo.Collection
}

// NewMongoCompletionRepository creates a new Completion repository backed by MongoDB.
func NewMongoCompletionRepository(db *mongo.Database) repository.CompletionRepository {
	return &mongoCompletionRepository{
		collection: db.Collection(completionCollectionName),
	}
}

// Upsert writes the completion flag for (athlete, date, section). The unique
// index on the key makes this a last-write-wins overwrite, never an append.
func (r *mongoCompletionRepository) Upsert(ctx context.Context, athleteID primitive.ObjectID, date string, section domain.Section, completed bool) error {
	if athleteID == primitive.NilObjectID || date == "" {
		return errors.New("athlete ID and date are required")
	}

	filter := bson.M{"athleteId": athleteID, "date": date, "section": section}
	update := bson.M{"$set": bson.M{
		"completed": completed,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// Get returns the completion flag for the key, false when no record exists.
func (r *mongoCompletionRepository) Get(ctx context.Context, athleteID primitive.ObjectID, date string, section domain.Section) (bool, error) {
	var completion domain.Completion
	filter := bson.M{"athleteId": athleteID, "date": date, "section": section}

	err := r.collection.FindOne(ctx, filter).Decode(&completion)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return completion.Completed, nil
}

// List retrieves all completion records, newest date first (for exports).
func (r *mongoCompletionRepository) List(ctx context.Context) ([]domain.Completion, error) {
	var completions []domain.Completion
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "athleteId", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &completions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return completions, nil
}

// EnsureCompletionIndexes creates necessary indexes for the completions collection.
func EnsureCompletionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Upsert key
			Keys: bson.D{
				{Key: "athleteId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "section", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
