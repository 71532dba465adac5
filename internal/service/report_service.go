package service

import (
	"context"
	"errors"
	"math"
	"time"

	"pitchplan/internal/domain"
	"pitchplan/internal/plan"
	"pitchplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is adherence for one assignment's current week. Total is 21 (7 days
// × 3 sections) when a plan week exists, otherwise 0 with a 0 percentage.
type Report struct {
	AthleteID   primitive.ObjectID `json:"athleteId"`
	AthleteName string             `json:"athleteName"`
	Email       string             `json:"email"`
	StartDate   string             `json:"startDate"`
	CurrentWeek int                `json:"currentWeek"`
	Done        int                `json:"done"`
	Total       int                `json:"total"`
	Percentage  int                `json:"percentage"`
}

// ReportsOverview bundles the adherence list with the recent-notes feed for
// the admin reports page.
type ReportsOverview struct {
	Reports     []Report           `json:"reports"`
	RecentNotes []domain.DailyNote `json:"recentNotes"`
}

// --- Service Interface ---
type ReportService interface {
	// GetOverview computes current-week adherence for every assignment.
	GetOverview(ctx context.Context, today time.Time) (*ReportsOverview, error)
	// GetAthleteReport computes adherence for one athlete's active assignment.
	GetAthleteReport(ctx context.Context, athleteID primitive.ObjectID, today time.Time) (*Report, error)
}

// --- Service Implementation ---

// reportService implements the ReportService interface. Read-only.
type reportService struct {
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
	planWeekRepo   repository.PlanWeekRepository
	completionRepo repository.CompletionRepository
	noteRepo       repository.NoteRepository
}

// NewReportService creates a new instance of reportService.
func NewReportService(
	userRepo repository.UserRepository,
	assignmentRepo repository.AssignmentRepository,
	planWeekRepo repository.PlanWeekRepository,
	completionRepo repository.CompletionRepository,
	noteRepo repository.NoteRepository,
) ReportService {
	return &reportService{
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		planWeekRepo:   planWeekRepo,
		completionRepo: completionRepo,
		noteRepo:       noteRepo,
	}
}

// GetOverview computes a report per assignment, newest assignment first,
// plus the 200 most recent notes.
func (s *reportService) GetOverview(ctx context.Context, today time.Time) (*ReportsOverview, error) {
	assignments, err := s.assignmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(assignments))
	for _, assignment := range assignments {
		report, err := s.reportFor(ctx, &assignment, today)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}

	recentNotes, err := s.noteRepo.ListRecent(ctx, 200)
	if err != nil {
		return nil, err
	}

	return &ReportsOverview{Reports: reports, RecentNotes: recentNotes}, nil
}

// GetAthleteReport computes the report for one athlete's active assignment.
func (s *reportService) GetAthleteReport(ctx context.Context, athleteID primitive.ObjectID, today time.Time) (*Report, error) {
	assignment, err := s.assignmentRepo.GetActiveByAthlete(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveAssignment
		}
		return nil, err
	}
	return s.reportFor(ctx, assignment, today)
}

// reportFor counts completed slots across the current week's 7 dates × 3
// sections. With no generated plan week the report stays at 0/0 = 0%.
func (s *reportService) reportFor(ctx context.Context, assignment *domain.Assignment, today time.Time) (*Report, error) {
	start, err := plan.ParseDate(assignment.StartDate)
	if err != nil {
		return nil, err
	}
	currentWeek := plan.WeekNumber(start, today)

	report := &Report{
		AthleteID:   assignment.AthleteID,
		StartDate:   assignment.StartDate,
		CurrentWeek: currentWeek,
	}
	if athlete, err := s.userRepo.GetByID(ctx, assignment.AthleteID); err == nil {
		report.AthleteName = athlete.Name
		report.Email = athlete.Email
	}

	_, err = s.planWeekRepo.GetWeek(ctx, assignment.ID, currentWeek)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return report, nil // no plan, 0/0 counts as 0%
		}
		return nil, err
	}

	for _, date := range plan.WeekDates(start, currentWeek) {
		for _, section := range domain.Sections {
			report.Total++
			done, err := s.completionRepo.Get(ctx, assignment.AthleteID, date, section)
			if err != nil {
				return nil, err
			}
			if done {
				report.Done++
			}
		}
	}
	if report.Total > 0 {
		report.Percentage = int(math.Round(float64(report.Done) / float64(report.Total) * 100))
	}
	return report, nil
}
