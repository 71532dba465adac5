package plan

import (
	"testing"

	"pitchplan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseWeek() domain.WeekTemplate {
	return domain.WeekTemplate{
		domain.Monday:  {Workout: "Squat 3x10", Mobility: "Hip flow 15m", Throwing: "Catch 60 ft"},
		domain.Tuesday: {Workout: "Rows 3x12", Mobility: "", Throwing: "Long toss"},
		domain.Sunday:  {Workout: "OFF", Mobility: "Breathing 10m", Throwing: "OFF"},
	}
}

func TestGenerateProducesSixFullWeeks(t *testing.T) {
	weeks := Generate(baseWeek(), DefaultThrowingOverrides)

	require.Len(t, weeks, 6)
	for i, week := range weeks {
		require.Len(t, week, 7, "week %d should carry all seven days", i+1)
		for _, day := range domain.Weekdays {
			_, ok := week[day]
			assert.True(t, ok, "week %d missing day %s", i+1, day)
		}
	}
}

func TestGenerateWorkoutPhases(t *testing.T) {
	weeks := Generate(baseWeek(), DefaultThrowingOverrides)

	tests := []struct {
		week int
		want string
	}{
		{1, "Squat 3x10"},
		{2, "Squat 3x10"},
		{3, "Squat 3x10\nProgression: +5–10% load / +1 set where appropriate."},
		{4, "Squat 3x10\nProgression: +5–10% load / +1 set where appropriate."},
		{5, "Squat 3x10\nPower focus: lower reps, higher intent."},
		{6, "Squat 3x10\nDELOAD: reduce load ~20% and volume."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, weeks[tt.week-1][domain.Monday].Workout, "week %d", tt.week)
	}
}

func TestGenerateThrowingOverridesEveryDay(t *testing.T) {
	weeks := Generate(baseWeek(), DefaultThrowingOverrides)

	for i, week := range weeks {
		for _, day := range domain.Weekdays {
			assert.Equal(t, DefaultThrowingOverrides[i], week[day].Throwing,
				"week %d day %s should carry the week's throwing override", i+1, day)
		}
	}
	// the base template's throwing text never survives
	assert.NotEqual(t, "Catch 60 ft", weeks[0][domain.Monday].Throwing)
}

func TestGenerateMobilityDefault(t *testing.T) {
	weeks := Generate(baseWeek(), DefaultThrowingOverrides)

	// explicit mobility text is kept
	assert.Equal(t, "Hip flow 15m", weeks[0][domain.Monday].Mobility)
	// empty mobility falls back to the default
	assert.Equal(t, DefaultMobility, weeks[0][domain.Tuesday].Mobility)
	// missing days get the default too
	assert.Equal(t, DefaultMobility, weeks[0][domain.Wednesday].Mobility)
}

func TestGenerateMissingDaysTreatedAsEmpty(t *testing.T) {
	weeks := Generate(baseWeek(), DefaultThrowingOverrides)

	// Wednesday is absent from the base: suffix applies to an empty workout.
	assert.Equal(t, "", weeks[0][domain.Wednesday].Workout)
	assert.Equal(t, "\nProgression: +5–10% load / +1 set where appropriate.", weeks[2][domain.Wednesday].Workout)
	assert.Equal(t, "\nDELOAD: reduce load ~20% and volume.", weeks[5][domain.Wednesday].Workout)
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	base := baseWeek()
	Generate(base, DefaultThrowingOverrides)

	require.Len(t, base, 3)
	assert.Equal(t, "Squat 3x10", base[domain.Monday].Workout)
	assert.Equal(t, "", base[domain.Tuesday].Mobility)
	assert.Equal(t, "Catch 60 ft", base[domain.Monday].Throwing)
}

func TestGenerateCustomOverrides(t *testing.T) {
	overrides := ThrowingOverrides{"w1", "w2", "w3", "w4", "w5", "w6"}
	weeks := Generate(baseWeek(), overrides)

	for i := range weeks {
		assert.Equal(t, overrides[i], weeks[i][domain.Friday].Throwing)
	}
}
