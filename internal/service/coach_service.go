package service

import (
	"context"
	"errors"
	"time"

	"pitchplan/internal/domain"
	"pitchplan/internal/plan"
	"pitchplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAthleteNotFound    = errors.New("athlete user not found")
	ErrAthleteNotRole     = errors.New("user found but is not an athlete")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrNoActiveAssignment = errors.New("athlete has no active assignment")
)

// AssignmentInfo is an assignment enriched with athlete and program context
// for admin listings.
type AssignmentInfo struct {
	Assignment  domain.Assignment `json:"assignment"`
	AthleteName string            `json:"athleteName"`
	Email       string            `json:"email"`
	ProgramName string            `json:"programName"`
}

// AthleteDetail is the coach's per-athlete view: the resolved current week
// plus a 28-day completion series and recent notes.
type AthleteDetail struct {
	Athlete     domain.User        `json:"athlete"`
	Assignment  *domain.Assignment `json:"assignment,omitempty"`
	CurrentWeek int                `json:"currentWeek,omitempty"`
	WeekDates   []string           `json:"weekDates,omitempty"`
	Daily       []DailyCount       `json:"daily,omitempty"`
	Notes       []domain.DailyNote `json:"notes,omitempty"`
}

// DailyCount is how many of the three sections were completed on one date.
type DailyCount struct {
	Date  string `json:"date"`
	Value int    `json:"value"` // 0..3
}

// --- Service Interface ---
type CoachService interface {
	// Assignment management
	CreateAssignment(ctx context.Context, athleteID, programID primitive.ObjectID, startDate string) (*domain.Assignment, error)
	ListAssignments(ctx context.Context) ([]AssignmentInfo, error)

	// GeneratePlan expands the assignment's program template into six weeks
	// and replaces the stored plan atomically.
	GeneratePlan(ctx context.Context, assignmentID primitive.ObjectID) error

	// Roster
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetAthleteDetail(ctx context.Context, athleteID primitive.ObjectID, today time.Time) (*AthleteDetail, error)

	// Settings
	GetLockFutureWeeks(ctx context.Context) (bool, error)
	SetLockFutureWeeks(ctx context.Context, locked bool) error
}

// --- Service Implementation ---

// coachService implements the CoachService interface.
type coachService struct {
	userRepo       repository.UserRepository
	programRepo    repository.ProgramRepository
	assignmentRepo repository.AssignmentRepository
	planWeekRepo   repository.PlanWeekRepository
	completionRepo repository.CompletionRepository
	noteRepo       repository.NoteRepository
	settingsRepo   repository.SettingsRepository
	overrides      plan.ThrowingOverrides
}

// NewCoachService creates a new instance of coachService. The throwing
// overrides are injected so the progression table can change without touching
// generation logic.
func NewCoachService(
	userRepo repository.UserRepository,
	programRepo repository.ProgramRepository,
	assignmentRepo repository.AssignmentRepository,
	planWeekRepo repository.PlanWeekRepository,
	completionRepo repository.CompletionRepository,
	noteRepo repository.NoteRepository,
	settingsRepo repository.SettingsRepository,
	overrides plan.ThrowingOverrides,
) CoachService {
	return &coachService{
		userRepo:       userRepo,
		programRepo:    programRepo,
		assignmentRepo: assignmentRepo,
		planWeekRepo:   planWeekRepo,
		completionRepo: completionRepo,
		noteRepo:       noteRepo,
		settingsRepo:   settingsRepo,
		overrides:      overrides,
	}
}

// === Assignment Management ===

// CreateAssignment binds an athlete to a program starting on a calendar date.
func (s *coachService) CreateAssignment(ctx context.Context, athleteID, programID primitive.ObjectID, startDate string) (*domain.Assignment, error) {
	if athleteID == primitive.NilObjectID || programID == primitive.NilObjectID {
		return nil, errors.New("athlete ID and program ID are required")
	}
	if _, err := plan.ParseDate(startDate); err != nil {
		return nil, err
	}

	// Verify the athlete exists and has the right role.
	athlete, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	if !athlete.IsAthlete() {
		return nil, ErrAthleteNotRole
	}

	// Verify the program exists.
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	assignment := &domain.Assignment{
		AthleteID: athleteID,
		ProgramID: programID,
		StartDate: startDate,
	}

	assignmentID, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return nil, err
	}
	assignment.ID = assignmentID
	return assignment, nil
}

// ListAssignments returns all assignments with athlete and program names.
func (s *coachService) ListAssignments(ctx context.Context) ([]AssignmentInfo, error) {
	assignments, err := s.assignmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]AssignmentInfo, 0, len(assignments))
	for _, a := range assignments {
		info := AssignmentInfo{Assignment: a}
		if athlete, err := s.userRepo.GetByID(ctx, a.AthleteID); err == nil {
			info.AthleteName = athlete.Name
			info.Email = athlete.Email
		}
		if program, err := s.programRepo.GetByID(ctx, a.ProgramID); err == nil {
			info.ProgramName = program.Name
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// GeneratePlan expands the base template week of the assignment's program
// into six progressed weeks and replaces all six plan rows in one
// transaction. Regenerating is an idempotent overwrite.
func (s *coachService) GeneratePlan(ctx context.Context, assignmentID primitive.ObjectID) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	program, err := s.programRepo.GetByID(ctx, assignment.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}

	weeks := plan.Generate(program.Week, s.overrides)
	return s.planWeekRepo.ReplaceAll(ctx, assignmentID, weeks)
}

// === Roster ===

// ListUsers returns all users with password hashes cleared.
func (s *coachService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetAthleteDetail builds the coach's view of one athlete: current week dates
// plus a 28-day completion series (0..3 per day) and the latest notes.
func (s *coachService) GetAthleteDetail(ctx context.Context, athleteID primitive.ObjectID, today time.Time) (*AthleteDetail, error) {
	athlete, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	athlete.PasswordHash = ""

	detail := &AthleteDetail{Athlete: *athlete}

	assignment, err := s.assignmentRepo.GetActiveByAthlete(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return detail, nil // no assignment yet, nothing to resolve
		}
		return nil, err
	}
	detail.Assignment = assignment

	start, err := plan.ParseDate(assignment.StartDate)
	if err != nil {
		return nil, err
	}
	detail.CurrentWeek = plan.WeekNumber(start, today)
	detail.WeekDates = plan.WeekDates(start, detail.CurrentWeek)

	// Last 28 days of completion counts, oldest first.
	detail.Daily = make([]DailyCount, 0, 28)
	for i := 27; i >= 0; i-- {
		date := plan.FormatDate(today.AddDate(0, 0, -i))
		count := 0
		for _, section := range domain.Sections {
			done, err := s.completionRepo.Get(ctx, athleteID, date, section)
			if err != nil {
				return nil, err
			}
			if done {
				count++
			}
		}
		detail.Daily = append(detail.Daily, DailyCount{Date: date, Value: count})
	}

	notes, err := s.noteRepo.ListByAthlete(ctx, athleteID, 100)
	if err != nil {
		return nil, err
	}
	detail.Notes = notes

	return detail, nil
}

// === Settings ===

func (s *coachService) GetLockFutureWeeks(ctx context.Context) (bool, error) {
	return s.settingsRepo.GetLockFutureWeeks(ctx)
}

func (s *coachService) SetLockFutureWeeks(ctx context.Context, locked bool) error {
	return s.settingsRepo.SetLockFutureWeeks(ctx, locked)
}
