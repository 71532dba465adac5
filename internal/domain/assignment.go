package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment binds an athlete to a program starting on a calendar date.
// StartDate is an ISO YYYY-MM-DD string; there is no time-of-day component
// anywhere in scheduling.
//
// An athlete may accumulate several assignments over time; the most recently
// created one is the active one (see repository.AssignmentRepository
// GetActiveByAthlete).
type Assignment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	ProgramID primitive.ObjectID `bson:"programId" json:"programId"`
	StartDate string             `bson:"startDate" json:"startDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
