package service

import (
	"context"
	"errors"
	"fmt"

	"pitchplan/internal/domain"
	"pitchplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound  = errors.New("program not found")
	ErrValidationFailed = errors.New("program validation failed")
)

// --- Service Interface ---
type ProgramService interface {
	CreateProgram(ctx context.Context, name, description string, week domain.WeekTemplate, notes string) (*domain.Program, error)
	GetProgramByID(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error)
	ListPrograms(ctx context.Context) ([]domain.Program, error)
	UpdateProgram(ctx context.Context, programID primitive.ObjectID, name, description string, week domain.WeekTemplate, notes string) (*domain.Program, error)
	// EnsureSeedProgram inserts the starter template when the store is empty.
	EnsureSeedProgram(ctx context.Context) error
}

// --- Service Implementation ---

// programService implements the ProgramService interface.
type programService struct {
	programRepo repository.ProgramRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(programRepo repository.ProgramRepository) ProgramService {
	return &programService{
		programRepo: programRepo,
	}
}

// CreateProgram handles the creation of a new program template.
// Day keys are validated against the closed weekday set; a template may be
// saved with days missing, which the generator fills later.
func (s *programService) CreateProgram(ctx context.Context, name, description string, week domain.WeekTemplate, notes string) (*domain.Program, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if err := week.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	program := &domain.Program{
		Name:        name,
		Description: description,
		Week:        week,
		Notes:       notes,
	}

	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	program.ID = programID
	return s.programRepo.GetByID(ctx, programID)
}

// GetProgramByID retrieves a single program template.
func (s *programService) GetProgramByID(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// ListPrograms retrieves all program templates.
func (s *programService) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	return s.programRepo.List(ctx)
}

// UpdateProgram fully replaces a program's content after validation.
func (s *programService) UpdateProgram(ctx context.Context, programID primitive.ObjectID, name, description string, week domain.WeekTemplate, notes string) (*domain.Program, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if err := week.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if programID == primitive.NilObjectID {
		return nil, errors.New("program ID is required")
	}

	existing, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	existing.Name = name
	existing.Description = description
	existing.Week = week
	existing.Notes = notes

	if err := s.programRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return existing, nil
}

// EnsureSeedProgram inserts the "Pitchers – Base Week" starter template when
// no programs exist yet, so a fresh install has something to assign.
func (s *programService) EnsureSeedProgram(ctx context.Context) error {
	count, err := s.programRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := &domain.Program{
		Name:        "Pitchers – Base Week",
		Description: "Starter week used to generate multi-week plans.",
		Week: domain.WeekTemplate{
			domain.Monday:    {Workout: "Lower body strength + core circuit\nSquat 3x10 (light-mod)\nCore: plank 3x45s", Mobility: "Hip flow 15m", Throwing: "Flat-ground 30 throws @ 60–90 ft"},
			domain.Tuesday:   {Workout: "Upper push/pull + scap\nRows 3x12, Push-ups 3x15", Mobility: "T-spine + shoulders 15m", Throwing: "Long toss to 90 ft (mechanics)"},
			domain.Wednesday: {Workout: "Movement day: sprints + plyos", Mobility: "Ankles + hips 12m", Throwing: "Recovery: plyo wall 10m"},
			domain.Thursday:  {Workout: "Lower + med ball", Mobility: "Post-workout stretch 10m", Throwing: "Bullpen: 20–30 pitches @ 70–80%"},
			domain.Friday:    {Workout: "Upper + cuff", Mobility: "Band series 12m", Throwing: "Catch 60–90 ft"},
			domain.Saturday:  {Workout: "Full-body circuit + core", Mobility: "Yoga recovery 20m", Throwing: "Optional light plyos"},
			domain.Sunday:    {Workout: "OFF", Mobility: "Breathing + light mobility 10m", Throwing: "OFF"},
		},
		Notes: "Week 1 base. Admin → Generate 6-Week per assignment.",
	}

	_, err = s.programRepo.Create(ctx, seed)
	return err
}
