package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Weekday is the closed set of day keys a program week may use, Monday first.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Weekdays lists the canonical day keys in display order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DaySpec is the training content for one day of a program week.
type DaySpec struct {
	Workout  string `bson:"workout" json:"workout"`
	Mobility string `bson:"mobility" json:"mobility"`
	Throwing string `bson:"throwing" json:"throwing"`
}

// WeekTemplate maps day keys to their training content. Programs may be saved
// with days missing; the plan generator fills the gaps with empty DaySpecs.
type WeekTemplate map[Weekday]DaySpec

// Validate rejects week maps that use day keys outside the canonical seven.
func (w WeekTemplate) Validate() error {
	for day := range w {
		valid := false
		for _, known := range Weekdays {
			if day == known {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown weekday key %q", day)
		}
	}
	return nil
}

// Normalized returns a copy of the week with all seven canonical day keys
// present, missing days filled with empty DaySpecs. The receiver is not
// modified.
func (w WeekTemplate) Normalized() WeekTemplate {
	out := make(WeekTemplate, len(Weekdays))
	for _, day := range Weekdays {
		out[day] = w[day]
	}
	return out
}

// Program represents a reusable one-week training template created by a coach.
type Program struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Week        WeekTemplate       `bson:"week" json:"week"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
