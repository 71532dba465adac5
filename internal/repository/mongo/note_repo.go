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

const noteCollectionName = "daily_notes"

// mongoNoteRepository implements repository.NoteRepository
type mongoNoteRepository struct {
	collection *mongo.Collection
}

// NewMongoNoteRepository creates a new DailyNote repository backed by MongoDB.
func NewMongoNoteRepository(db *mongo.Database) repository.NoteRepository {
	return &mongoNoteRepository{
		collection: db.Collection(noteCollectionName),
	}
}

// Upsert writes the note for (athlete, date), overwriting any previous text.
func (r *mongoNoteRepository) Upsert(ctx context.Context, athleteID primitive.ObjectID, date, note string) error {
	if athleteID == primitive.NilObjectID || date == "" {
		return errors.New("athlete ID and date are required")
	}

	filter := bson.M{"athleteId": athleteID, "date": date}
	update := bson.M{"$set": bson.M{
		"note":      note,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// Get returns the note for (athlete, date), "" when no record exists.
func (r *mongoNoteRepository) Get(ctx context.Context, athleteID primitive.ObjectID, date string) (string, error) {
	var note domain.DailyNote
	filter := bson.M{"athleteId": athleteID, "date": date}

	err := r.collection.FindOne(ctx, filter).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return note.Note, nil
}

// ListByAthlete retrieves an athlete's notes, newest date first.
func (r *mongoNoteRepository) ListByAthlete(ctx context.Context, athleteID primitive.ObjectID, limit int64) ([]domain.DailyNote, error) {
	filter := bson.M{"athleteId": athleteID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	return r.find(ctx, filter, findOptions)
}

// ListRecent retrieves the most recent notes across all athletes.
func (r *mongoNoteRepository) ListRecent(ctx context.Context, limit int64) ([]domain.DailyNote, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	return r.find(ctx, bson.M{}, findOptions)
}

// List retrieves all notes, newest date first (for exports).
func (r *mongoNoteRepository) List(ctx context.Context) ([]domain.DailyNote, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "athleteId", Value: 1}})
	return r.find(ctx, bson.M{}, findOptions)
}

func (r *mongoNoteRepository) find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]domain.DailyNote, error) {
	var notes []domain.DailyNote

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// EnsureNoteIndexes creates necessary indexes for the daily_notes collection.
func EnsureNoteIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Upsert key
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
