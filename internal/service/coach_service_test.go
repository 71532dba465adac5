package service

import (
	"context"
	"testing"

	"pitchplan/internal/domain"
	"pitchplan/internal/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type coachFixture struct {
	userRepo       *fakeUserRepo
	programRepo    *fakeProgramRepo
	assignmentRepo *fakeAssignmentRepo
	planWeekRepo   *fakePlanWeekRepo
	completionRepo *fakeCompletionRepo
	noteRepo       *fakeNoteRepo
	settingsRepo   *fakeSettingsRepo
	svc            CoachService
}

func newCoachFixture() *coachFixture {
	f := &coachFixture{
		userRepo:       newFakeUserRepo(),
		programRepo:    newFakeProgramRepo(),
		assignmentRepo: &fakeAssignmentRepo{},
		planWeekRepo:   newFakePlanWeekRepo(),
		completionRepo: newFakeCompletionRepo(),
		noteRepo:       newFakeNoteRepo(),
		settingsRepo:   &fakeSettingsRepo{locked: true},
	}
	f.svc = NewCoachService(f.userRepo, f.programRepo, f.assignmentRepo, f.planWeekRepo,
		f.completionRepo, f.noteRepo, f.settingsRepo, plan.DefaultThrowingOverrides)
	return f
}

func (f *coachFixture) addUser(t *testing.T, name, email string, role domain.Role) primitive.ObjectID {
	t.Helper()
	id, err := f.userRepo.Create(context.Background(), &domain.User{Name: name, Email: email, Role: role})
	require.NoError(t, err)
	return id
}

func (f *coachFixture) addProgram(t *testing.T, name string) primitive.ObjectID {
	t.Helper()
	program := &domain.Program{
		Name: name,
		Week: domain.WeekTemplate{
			domain.Monday: {Workout: "Squat 3x10", Mobility: "Hip flow", Throwing: "Catch"},
		},
	}
	_, err := f.programRepo.Create(context.Background(), program)
	require.NoError(t, err)
	return program.ID
}

func TestCreateAssignment(t *testing.T) {
	f := newCoachFixture()
	ctx := context.Background()
	athleteID := f.addUser(t, "Ava", "ava@example.com", domain.RoleAthlete)
	programID := f.addProgram(t, "Base Week")

	assignment, err := f.svc.CreateAssignment(ctx, athleteID, programID, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, athleteID, assignment.AthleteID)
	assert.Equal(t, programID, assignment.ProgramID)
	assert.Equal(t, "2024-01-01", assignment.StartDate)
	assert.False(t, assignment.ID.IsZero())
}

func TestCreateAssignmentValidation(t *testing.T) {
	f := newCoachFixture()
	ctx := context.Background()
	athleteID := f.addUser(t, "Ava", "ava@example.com", domain.RoleAthlete)
	coachID := f.addUser(t, "Coach", "coach@example.com", domain.RoleCoach)
	programID := f.addProgram(t, "Base Week")

	_, err := f.svc.CreateAssignment(ctx, athleteID, programID, "01/01/2024")
	assert.Error(t, err)

	_, err = f.svc.CreateAssignment(ctx, primitive.NewObjectID(), programID, "2024-01-01")
	assert.ErrorIs(t, err, ErrAthleteNotFound)

	_, err = f.svc.CreateAssignment(ctx, coachID, programID, "2024-01-01")
	assert.ErrorIs(t, err, ErrAthleteNotRole)

	_, err = f.svc.CreateAssignment(ctx, athleteID, primitive.NewObjectID(), "2024-01-01")
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestGeneratePlanStoresSixWeeks(t *testing.T) {
	f := newCoachFixture()
	ctx := context.Background()
	athleteID := f.addUser(t, "Ava", "ava@example.com", domain.RoleAthlete)
	programID := f.addProgram(t, "Base Week")

	assignment, err := f.svc.CreateAssignment(ctx, athleteID, programID, "2024-01-01")
	require.NoError(t, err)

	require.NoError(t, f.svc.GeneratePlan(ctx, assignment.ID))

	for w := 1; w <= domain.PlanWeeks; w++ {
		week, err := f.planWeekRepo.GetWeek(ctx, assignment.ID, w)
		require.NoError(t, err, "week %d should exist", w)
		assert.Equal(t, plan.DefaultThrowingOverrides[w-1], week.Week[domain.Monday].Throwing)
	}

	week5, err := f.planWeekRepo.GetWeek(ctx, assignment.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "Squat 3x10\nPower focus: lower reps, higher intent.", week5.Week[domain.Monday].Workout)
}

func TestGeneratePlanRegenerateOverwrites(t *testing.T) {
	f := newCoachFixture()
	ctx := context.Background()
	athleteID := f.addUser(t, "Ava", "ava@example.com", domain.RoleAthlete)
	programID := f.addProgram(t, "Base Week")

	assignment, err := f.svc.CreateAssignment(ctx, athleteID, programID, "2024-01-01")
	require.NoError(t, err)
	require.NoError(t, f.svc.GeneratePlan(ctx, assignment.ID))

	// change the template, regenerate, and the stored plan follows
	program, err := f.programRepo.GetByID(ctx, programID)
	require.NoError(t, err)
	program.Week[domain.Monday] = domain.DaySpec{Workout: "Deadlift 3x5"}
	require.NoError(t, f.programRepo.Update(ctx, program))

	require.NoError(t, f.svc.GeneratePlan(ctx, assignment.ID))

	week1, err := f.planWeekRepo.GetWeek(ctx, assignment.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Deadlift 3x5", week1.Week[domain.Monday].Workout)
}

func TestGeneratePlanUnknownAssignment(t *testing.T) {
	f := newCoachFixture()

	err := f.svc.GeneratePlan(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestListAssignmentsJoinsNames(t *testing.T) {
	f := newCoachFixture()
	ctx := context.Background()
	athleteID := f.addUser(t, "Ava", "ava@example.com", domain.RoleAthlete)
	programID := f.addProgram(t, "Base Week")

	_, err := f.svc.CreateAssignment(ctx, athleteID, programID, "2024-01-01")
	require.NoError(t, err)

	infos, err := f.svc.ListAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "Ava", infos[0].AthleteName)
	assert.Equal(t, "ava@example.com", infos[0].Email)
	assert.Equal(t, "Base Week", infos[0].ProgramName)
}

func TestListUsersHidesPasswordHashes(t *testing.T) {
	f := newCoachFixture()
	ctx := context.Background()
	id := f.addUser(t, "Ava", "ava@example.com", domain.RoleAthlete)
	require.NoError(t, f.userRepo.UpdatePasswordHash(ctx, id, "$2a$10$secret"))

	users, err := f.svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
}

func TestGetAthleteDetail(t *testing.T) {
	f := newCoachFixture()
	ctx := context.Background()
	athleteID := f.addUser(t, "Ava", "ava@example.com", domain.RoleAthlete)
	programID := f.addProgram(t, "Base Week")

	_, err := f.svc.CreateAssignment(ctx, athleteID, programID, "2024-01-01")
	require.NoError(t, err)

	today := mustParse(t, "2024-01-10")
	require.NoError(t, f.completionRepo.Upsert(ctx, athleteID, "2024-01-10", domain.SectionWorkout, true))
	require.NoError(t, f.completionRepo.Upsert(ctx, athleteID, "2024-01-10", domain.SectionMobility, true))
	require.NoError(t, f.completionRepo.Upsert(ctx, athleteID, "2024-01-09", domain.SectionThrowing, true))
	require.NoError(t, f.noteRepo.Upsert(ctx, athleteID, "2024-01-09", "long day"))

	detail, err := f.svc.GetAthleteDetail(ctx, athleteID, today)
	require.NoError(t, err)

	assert.Equal(t, "Ava", detail.Athlete.Name)
	assert.Empty(t, detail.Athlete.PasswordHash)
	assert.Equal(t, 2, detail.CurrentWeek)
	require.Len(t, detail.WeekDates, 7)
	assert.Equal(t, "2024-01-08", detail.WeekDates[0])

	require.Len(t, detail.Daily, 28)
	// oldest first, today last
	assert.Equal(t, "2023-12-14", detail.Daily[0].Date)
	assert.Equal(t, "2024-01-10", detail.Daily[27].Date)
	assert.Equal(t, 2, detail.Daily[27].Value)
	assert.Equal(t, 1, detail.Daily[26].Value)
	assert.Equal(t, 0, detail.Daily[25].Value)

	require.Len(t, detail.Notes, 1)
	assert.Equal(t, "long day", detail.Notes[0].Note)
}

func TestGetAthleteDetailNoAssignment(t *testing.T) {
	f := newCoachFixture()
	athleteID := f.addUser(t, "Ava", "ava@example.com", domain.RoleAthlete)

	detail, err := f.svc.GetAthleteDetail(context.Background(), athleteID, mustParse(t, "2024-01-10"))
	require.NoError(t, err)
	assert.Nil(t, detail.Assignment)
	assert.Zero(t, detail.CurrentWeek)
}

func TestLockFutureWeeksSetting(t *testing.T) {
	f := newCoachFixture()
	ctx := context.Background()

	locked, err := f.svc.GetLockFutureWeeks(ctx)
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, f.svc.SetLockFutureWeeks(ctx, false))
	locked, err = f.svc.GetLockFutureWeeks(ctx)
	require.NoError(t, err)
	assert.False(t, locked)
}
