package service

import (
	"context"
	"sort"
	"time"

	"pitchplan/internal/domain"
	"pitchplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes used across the service tests. They mirror the
// keyed-upsert semantics of the mongo implementations.

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = *user
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := u
	return &user, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID.Hex() < users[j].ID.Hex() })
	return users, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id primitive.ObjectID, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

type fakeProgramRepo struct {
	programs map[primitive.ObjectID]domain.Program
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[primitive.ObjectID]domain.Program)}
}

func (f *fakeProgramRepo) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	program.ID = primitive.NewObjectID()
	f.programs[program.ID] = *program
	return program.ID, nil
}

func (f *fakeProgramRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Program, error) {
	p, ok := f.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	program := p
	return &program, nil
}

func (f *fakeProgramRepo) Update(_ context.Context, program *domain.Program) error {
	if _, ok := f.programs[program.ID]; !ok {
		return repository.ErrNotFound
	}
	f.programs[program.ID] = *program
	return nil
}

func (f *fakeProgramRepo) List(_ context.Context) ([]domain.Program, error) {
	programs := make([]domain.Program, 0, len(f.programs))
	for _, p := range f.programs {
		programs = append(programs, p)
	}
	return programs, nil
}

func (f *fakeProgramRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.programs)), nil
}

type fakeAssignmentRepo struct {
	assignments []domain.Assignment
}

func (f *fakeAssignmentRepo) Create(_ context.Context, assignment *domain.Assignment) (primitive.ObjectID, error) {
	assignment.ID = primitive.NewObjectID()
	assignment.CreatedAt = time.Now().UTC()
	f.assignments = append(f.assignments, *assignment)
	return assignment.ID, nil
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Assignment, error) {
	for _, a := range f.assignments {
		if a.ID == id {
			assignment := a
			return &assignment, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAssignmentRepo) GetActiveByAthlete(_ context.Context, athleteID primitive.ObjectID) (*domain.Assignment, error) {
	for i := len(f.assignments) - 1; i >= 0; i-- {
		if f.assignments[i].AthleteID == athleteID {
			assignment := f.assignments[i]
			return &assignment, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAssignmentRepo) List(_ context.Context) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, len(f.assignments))
	copy(out, f.assignments)
	// newest first, like the mongo implementation
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

type fakePlanWeekRepo struct {
	plans map[primitive.ObjectID][]domain.WeekTemplate
}

func newFakePlanWeekRepo() *fakePlanWeekRepo {
	return &fakePlanWeekRepo{plans: make(map[primitive.ObjectID][]domain.WeekTemplate)}
}

func (f *fakePlanWeekRepo) ReplaceAll(_ context.Context, assignmentID primitive.ObjectID, weeks []domain.WeekTemplate) error {
	stored := make([]domain.WeekTemplate, len(weeks))
	copy(stored, weeks)
	f.plans[assignmentID] = stored
	return nil
}

func (f *fakePlanWeekRepo) GetWeek(_ context.Context, assignmentID primitive.ObjectID, weekNumber int) (*domain.PlanWeek, error) {
	weeks, ok := f.plans[assignmentID]
	if !ok || weekNumber < 1 || weekNumber > len(weeks) {
		return nil, repository.ErrNotFound
	}
	return &domain.PlanWeek{
		AssignmentID: assignmentID,
		WeekNumber:   weekNumber,
		Week:         weeks[weekNumber-1],
	}, nil
}

type completionKey struct {
	athleteID primitive.ObjectID
	date      string
	section   domain.Section
}

type fakeCompletionRepo struct {
	records map[completionKey]bool
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{records: make(map[completionKey]bool)}
}

func (f *fakeCompletionRepo) Upsert(_ context.Context, athleteID primitive.ObjectID, date string, section domain.Section, completed bool) error {
	f.records[completionKey{athleteID, date, section}] = completed
	return nil
}

func (f *fakeCompletionRepo) Get(_ context.Context, athleteID primitive.ObjectID, date string, section domain.Section) (bool, error) {
	return f.records[completionKey{athleteID, date, section}], nil
}

func (f *fakeCompletionRepo) List(_ context.Context) ([]domain.Completion, error) {
	completions := make([]domain.Completion, 0, len(f.records))
	for key, completed := range f.records {
		completions = append(completions, domain.Completion{
			AthleteID: key.athleteID,
			Date:      key.date,
			Section:   key.section,
			Completed: completed,
		})
	}
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].Date != completions[j].Date {
			return completions[i].Date > completions[j].Date
		}
		return completions[i].Section < completions[j].Section
	})
	return completions, nil
}

type noteKey struct {
	athleteID primitive.ObjectID
	date      string
}

type fakeNoteRepo struct {
	notes map[noteKey]string
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[noteKey]string)}
}

func (f *fakeNoteRepo) Upsert(_ context.Context, athleteID primitive.ObjectID, date, note string) error {
	f.notes[noteKey{athleteID, date}] = note
	return nil
}

func (f *fakeNoteRepo) Get(_ context.Context, athleteID primitive.ObjectID, date string) (string, error) {
	return f.notes[noteKey{athleteID, date}], nil
}

func (f *fakeNoteRepo) ListByAthlete(_ context.Context, athleteID primitive.ObjectID, limit int64) ([]domain.DailyNote, error) {
	all, _ := f.List(context.Background())
	notes := make([]domain.DailyNote, 0)
	for _, n := range all {
		if n.AthleteID == athleteID {
			notes = append(notes, n)
		}
	}
	if limit > 0 && int64(len(notes)) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

func (f *fakeNoteRepo) ListRecent(_ context.Context, limit int64) ([]domain.DailyNote, error) {
	notes, _ := f.List(context.Background())
	if limit > 0 && int64(len(notes)) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

func (f *fakeNoteRepo) List(_ context.Context) ([]domain.DailyNote, error) {
	notes := make([]domain.DailyNote, 0, len(f.notes))
	for key, note := range f.notes {
		notes = append(notes, domain.DailyNote{
			AthleteID: key.athleteID,
			Date:      key.date,
			Note:      note,
		})
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Date > notes[j].Date })
	return notes, nil
}

type fakeSettingsRepo struct {
	locked bool
}

func (f *fakeSettingsRepo) GetLockFutureWeeks(_ context.Context) (bool, error) {
	return f.locked, nil
}

func (f *fakeSettingsRepo) SetLockFutureWeeks(_ context.Context, locked bool) error {
	f.locked = locked
	return nil
}

type fakeFileStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (f *fakeFileStorage) PutObject(_ context.Context, objectKey, contentType string, body []byte) error {
	f.objects[objectKey] = body
	f.types[objectKey] = contentType
	return nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + objectKey + "?signed=1", nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	delete(f.objects, objectKey)
	return nil
}
