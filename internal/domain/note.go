package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyNote is free text an athlete attaches to one calendar day.
// Uniquely keyed by (AthleteID, Date); writes are upserts.
type DailyNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	Date      string             `bson:"date" json:"date"`
	Note      string             `bson:"note" json:"note"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
