package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Section is one of the three tracked training categories.
type Section string

const (
	SectionWorkout  Section = "workout"
	SectionMobility Section = "mobility"
	SectionThrowing Section = "throwing"
)

// Sections lists the canonical sections in display order.
var Sections = []Section{SectionWorkout, SectionMobility, SectionThrowing}

// Valid reports whether s is one of the three canonical sections.
func (s Section) Valid() bool {
	return s == SectionWorkout || s == SectionMobility || s == SectionThrowing
}

// Completion is a per-athlete, per-date, per-section done flag.
// Uniquely keyed by (AthleteID, Date, Section); writes are upserts, no history
// is retained. Date is an ISO YYYY-MM-DD string.
type Completion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	Date      string             `bson:"date" json:"date"`
	Section   Section            `bson:"section" json:"section"`
	Completed bool               `bson:"completed" json:"completed"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
