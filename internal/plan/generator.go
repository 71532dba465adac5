// Package plan holds the pure scheduling logic: expanding one base program
// week into a six-week progression, and mapping calendar dates onto program
// week numbers. Nothing in this package touches the database.
package plan

import (
	"pitchplan/internal/domain"
)

// Workout suffixes appended per training phase.
const (
	progressionSuffix = "\nProgression: +5–10% load / +1 set where appropriate."
	powerSuffix       = "\nPower focus: lower reps, higher intent."
	deloadSuffix      = "\nDELOAD: reduce load ~20% and volume."
)

// DefaultMobility is used for any day whose base mobility text is empty.
const DefaultMobility = "Mobility 10–15m"

// ThrowingOverrides is the per-week throwing prescription, indexed by week
// (element 0 = week 1). It replaces the template's throwing text wholesale:
// every day of a given week carries the same override string.
type ThrowingOverrides [domain.PlanWeeks]string

// DefaultThrowingOverrides is the standard six-week long-toss build-up.
var DefaultThrowingOverrides = ThrowingOverrides{
	"3 days @ 60–90 ft, 30 throws/day, mechanics focus",
	"3–4 days @ 90–120 ft, 35–40 throws/day, introduce pulldowns",
	"4 days @ 90–120 ft, 40 throws/day, light pulldowns",
	"4 days @ 90–120 ft, 40–45 throws/day, maintain mechanics",
	"4 days @ 120–150 ft, 45 throws/day + 10 easy mound pitches",
	"3 days @ 90 ft, 25 throws/day (recovery)",
}

// Generate expands a base program week into six progressed weeks:
//
//	weeks 1-2: base workout unchanged
//	weeks 3-4: progression suffix appended
//	week 5:    power suffix appended
//	week 6:    deload suffix appended
//
// Mobility falls back to DefaultMobility when the base text is empty, and the
// throwing text of every day is overwritten by the week's override string.
// Missing days or fields in the base week are treated as empty. The input is
// never mutated, and every returned week carries all seven weekdays.
func Generate(base domain.WeekTemplate, overrides ThrowingOverrides) []domain.WeekTemplate {
	weeks := make([]domain.WeekTemplate, 0, domain.PlanWeeks)
	for w := 1; w <= domain.PlanWeeks; w++ {
		week := make(domain.WeekTemplate, len(domain.Weekdays))
		for _, day := range domain.Weekdays {
			src := base[day] // zero DaySpec when the day is absent

			workout := src.Workout
			switch {
			case w <= 2:
				// base phase, unchanged
			case w <= 4:
				workout += progressionSuffix
			case w == 5:
				workout += powerSuffix
			default:
				workout += deloadSuffix
			}

			mobility := src.Mobility
			if mobility == "" {
				mobility = DefaultMobility
			}

			week[day] = domain.DaySpec{
				Workout:  workout,
				Mobility: mobility,
				Throwing: overrides[w-1],
			}
		}
		weeks = append(weeks, week)
	}
	return weeks
}
