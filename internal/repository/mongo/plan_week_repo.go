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

const planWeekCollectionName = "plan_weeks"

// mongoPlanWeekRepository implements repository.PlanWeekRepository
type mongoPlanWeekRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanWeekRepository creates a new PlanWeek repository backed by MongoDB.
func NewMongoPlanWeekRepository(db *mongo.Database) repository.PlanWeekRepository {
	return &mongoPlanWeekRepository{
		collection: db.Collection(planWeekCollectionName),
	}
}

// ReplaceAll upserts every week of the assignment's plan inside one session
// transaction, so regeneration is all-or-nothing and a concurrent reader
// never observes a mix of old and new weeks.
func (r *mongoPlanWeekRepository) ReplaceAll(ctx context.Context, assignmentID primitive.ObjectID, weeks []domain.WeekTemplate) error {
	if assignmentID == primitive.NilObjectID {
		return errors.New("assignment ID is required")
	}
	if len(weeks) == 0 {
		return errors.New("at least one week is required")
	}

	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	now := time.Now().UTC()
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		for i, week := range weeks {
			filter := bson.M{"assignmentId": assignmentID, "weekNumber": i + 1}
			update := bson.M{"$set": bson.M{
				"week":      week,
				"updatedAt": now,
			}}
			opts := options.Update().SetUpsert(true)
			if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
				return nil, err
			}
		}
		// Drop weeks beyond the new plan length left over from an older,
		// longer plan.
		_, err := r.collection.DeleteMany(sessCtx, bson.M{
			"assignmentId": assignmentID,
			"weekNumber":   bson.M{"$gt": len(weeks)},
		})
		return nil, err
	})
	return err
}

// GetWeek retrieves one generated week by (assignment, week number).
func (r *mongoPlanWeekRepository) GetWeek(ctx context.Context, assignmentID primitive.ObjectID, weekNumber int) (*domain.PlanWeek, error) {
	var planWeek domain.PlanWeek
	filter := bson.M{"assignmentId": assignmentID, "weekNumber": weekNumber}

	err := r.collection.FindOne(ctx, filter).Decode(&planWeek)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &planWeek, nil
}

// EnsurePlanWeekIndexes creates necessary indexes for the plan_weeks collection.
func EnsurePlanWeekIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One document per (assignment, week number)
			Keys:    bson.D{{Key: "assignmentId", Value: 1}, {Key: "weekNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
