package repository

import (
	"context"

	"pitchplan/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// ProgramRepository defines the interface for interacting with program templates.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	Update(ctx context.Context, program *domain.Program) error
	List(ctx context.Context) ([]domain.Program, error)
	Count(ctx context.Context) (int64, error)
}

// AssignmentRepository defines the interface for interacting with assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Assignment, error)
	// GetActiveByAthlete implements the active-assignment policy: of all the
	// athlete's assignments, the most recently created one wins.
	GetActiveByAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Assignment, error)
	List(ctx context.Context) ([]domain.Assignment, error)
}

// PlanWeekRepository defines the interface for interacting with generated plan weeks.
type PlanWeekRepository interface {
	// ReplaceAll atomically replaces every plan week of the assignment with
	// the given weeks (week numbers 1..len(weeks)). A concurrent reader never
	// observes a partially regenerated plan.
	ReplaceAll(ctx context.Context, assignmentID primitive.ObjectID, weeks []domain.WeekTemplate) error
	GetWeek(ctx context.Context, assignmentID primitive.ObjectID, weekNumber int) (*domain.PlanWeek, error)
}

// CompletionRepository defines the interface for the completion ledger.
type CompletionRepository interface {
	// Upsert writes the flag for (athlete, date, section), overwriting any
	// previous value for the same key.
	Upsert(ctx context.Context, athleteID primitive.ObjectID, date string, section domain.Section, completed bool) error
	// Get returns the flag for the key, false when no record exists.
	Get(ctx context.Context, athleteID primitive.ObjectID, date string, section domain.Section) (bool, error)
	List(ctx context.Context) ([]domain.Completion, error)
}

// NoteRepository defines the interface for daily notes.
type NoteRepository interface {
	Upsert(ctx context.Context, athleteID primitive.ObjectID, date, note string) error
	// Get returns the note for (athlete, date), "" when no record exists.
	Get(ctx context.Context, athleteID primitive.ObjectID, date string) (string, error)
	ListByAthlete(ctx context.Context, athleteID primitive.ObjectID, limit int64) ([]domain.DailyNote, error)
	ListRecent(ctx context.Context, limit int64) ([]domain.DailyNote, error)
	List(ctx context.Context) ([]domain.DailyNote, error)
}

// SettingsRepository defines the interface for store-backed settings.
type SettingsRepository interface {
	// GetLockFutureWeeks returns the flag, defaulting to true when no
	// settings document exists yet.
	GetLockFutureWeeks(ctx context.Context) (bool, error)
	SetLockFutureWeeks(ctx context.Context, locked bool) error
}
