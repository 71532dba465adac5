package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pitchplan/internal/domain"
	"pitchplan/internal/plan"
	"pitchplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidSection = errors.New("section must be one of workout, mobility, throwing")
	ErrWeekLocked     = plan.ErrWeekLocked
)

// DayStatus is one dashboard row: the plan content for a date joined with the
// athlete's completion flags and note.
type DayStatus struct {
	Date     string                  `json:"date"`
	Label    domain.Weekday          `json:"label"`
	Entry    domain.DaySpec          `json:"entry"`
	Complete map[domain.Section]bool `json:"complete"`
	Note     string                  `json:"note"`
}

// Dashboard is the athlete's view of one program week.
type Dashboard struct {
	Assignment  *domain.Assignment `json:"assignment,omitempty"`
	ProgramName string             `json:"programName,omitempty"`
	WeekNumber  int                `json:"weekNumber,omitempty"`
	Days        []DayStatus        `json:"days,omitempty"`
}

// --- Service Interface ---
type AthleteService interface {
	// GetDashboard resolves the athlete's week and joins plan content with
	// completions and notes. requestedWeek 0 means the current week; a
	// non-zero week is subject to the future-week lock.
	GetDashboard(ctx context.Context, athleteID primitive.ObjectID, today time.Time, requestedWeek int) (*Dashboard, error)
	SetCompletion(ctx context.Context, athleteID primitive.ObjectID, date string, section domain.Section, completed bool) error
	SetNote(ctx context.Context, athleteID primitive.ObjectID, date, note string) error
}

// --- Service Implementation ---

// athleteService implements the AthleteService interface.
type athleteService struct {
	assignmentRepo repository.AssignmentRepository
	programRepo    repository.ProgramRepository
	planWeekRepo   repository.PlanWeekRepository
	completionRepo repository.CompletionRepository
	noteRepo       repository.NoteRepository
	settingsRepo   repository.SettingsRepository
}

// NewAthleteService creates a new instance of athleteService.
func NewAthleteService(
	assignmentRepo repository.AssignmentRepository,
	programRepo repository.ProgramRepository,
	planWeekRepo repository.PlanWeekRepository,
	completionRepo repository.CompletionRepository,
	noteRepo repository.NoteRepository,
	settingsRepo repository.SettingsRepository,
) AthleteService {
	return &athleteService{
		assignmentRepo: assignmentRepo,
		programRepo:    programRepo,
		planWeekRepo:   planWeekRepo,
		completionRepo: completionRepo,
		noteRepo:       noteRepo,
		settingsRepo:   settingsRepo,
	}
}

// GetDashboard builds the athlete's week view. An athlete with no assignment
// or no generated plan gets an empty dashboard, not an error.
func (s *athleteService) GetDashboard(ctx context.Context, athleteID primitive.ObjectID, today time.Time, requestedWeek int) (*Dashboard, error) {
	dashboard := &Dashboard{}

	assignment, err := s.assignmentRepo.GetActiveByAthlete(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dashboard, nil
		}
		return nil, err
	}
	dashboard.Assignment = assignment

	if program, err := s.programRepo.GetByID(ctx, assignment.ProgramID); err == nil {
		dashboard.ProgramName = program.Name
	}

	start, err := plan.ParseDate(assignment.StartDate)
	if err != nil {
		return nil, err
	}
	currentWeek := plan.WeekNumber(start, today)

	weekNumber := requestedWeek
	if weekNumber == 0 {
		weekNumber = currentWeek
	}
	if weekNumber < 1 {
		return nil, fmt.Errorf("invalid week number %d", weekNumber)
	}

	locked, err := s.settingsRepo.GetLockFutureWeeks(ctx)
	if err != nil {
		return nil, err
	}
	if err := plan.CheckWeekAccess(currentWeek, weekNumber, locked); err != nil {
		return nil, err
	}
	dashboard.WeekNumber = weekNumber

	planWeek, err := s.planWeekRepo.GetWeek(ctx, assignment.ID, weekNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dashboard, nil // plan not generated yet
		}
		return nil, err
	}

	dates := plan.WeekDates(start, weekNumber)
	dashboard.Days = make([]DayStatus, 0, len(dates))
	for i, date := range dates {
		label := domain.Weekdays[i]
		day := DayStatus{
			Date:     date,
			Label:    label,
			Entry:    planWeek.Week[label],
			Complete: make(map[domain.Section]bool, len(domain.Sections)),
		}
		for _, section := range domain.Sections {
			done, err := s.completionRepo.Get(ctx, athleteID, date, section)
			if err != nil {
				return nil, err
			}
			day.Complete[section] = done
		}
		note, err := s.noteRepo.Get(ctx, athleteID, date)
		if err != nil {
			return nil, err
		}
		day.Note = note
		dashboard.Days = append(dashboard.Days, day)
	}

	return dashboard, nil
}

// SetCompletion upserts one completion flag after validating the section and
// date. Re-invoking with the same key overwrites, never appends.
func (s *athleteService) SetCompletion(ctx context.Context, athleteID primitive.ObjectID, date string, section domain.Section, completed bool) error {
	if !section.Valid() {
		return ErrInvalidSection
	}
	if _, err := plan.ParseDate(date); err != nil {
		return err
	}
	return s.completionRepo.Upsert(ctx, athleteID, date, section, completed)
}

// SetNote upserts the athlete's note for one date.
func (s *athleteService) SetNote(ctx context.Context, athleteID primitive.ObjectID, date, note string) error {
	if _, err := plan.ParseDate(date); err != nil {
		return err
	}
	return s.noteRepo.Upsert(ctx, athleteID, date, note)
}
