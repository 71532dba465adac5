package mongo

import (
	"context"
	"errors"
	"time"

	"pitchplan/internal/domain"
	"pitchplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsCollectionName = "settings"

// settingsDocument is the stored shape: one document per setting key.
type settingsDocument struct {
	Key       string    `bson:"key"`
	Value     bool      `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoSettingsRepository implements repository.SettingsRepository
type mongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository creates a new Settings repository backed by MongoDB.
func NewMongoSettingsRepository(db *mongo.Database) repository.SettingsRepository {
	return &mongoSettingsRepository{
		collection: db.Collection(settingsCollectionName),
	}
}

// GetLockFutureWeeks returns the week-lock flag. Missing document means the
// flag was never changed, which defaults to locked.
func (r *mongoSettingsRepository) GetLockFutureWeeks(ctx context.Context) (bool, error) {
	var doc settingsDocument
	filter := bson.M{"key": domain.SettingLockFutureWeeks}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return true, nil
		}
		return true, err
	}
	return doc.Value, nil
}

// SetLockFutureWeeks stores the week-lock flag.
func (r *mongoSettingsRepository) SetLockFutureWeeks(ctx context.Context, locked bool) error {
	filter := bson.M{"key": domain.SettingLockFutureWeeks}
	update := bson.M{"$set": bson.M{
		"value":     locked,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// EnsureSettingsIndexes creates necessary indexes for the settings collection.
func EnsureSettingsIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
