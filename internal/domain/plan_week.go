package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanWeeks is the number of weeks a generated plan spans.
const PlanWeeks = 6

// PlanWeek is one of the six generated weeks materialized for an assignment.
// Uniquely keyed by (AssignmentID, WeekNumber); regeneration replaces all six
// rows for the assignment in one transaction.
type PlanWeek struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssignmentID primitive.ObjectID `bson:"assignmentId" json:"assignmentId"`
	WeekNumber   int                `bson:"weekNumber" json:"weekNumber"` // 1..PlanWeeks
	Week         WeekTemplate       `bson:"week" json:"week"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
