package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"pitchplan/internal/domain"
	"pitchplan/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoachHandler holds the coach/admin service dependencies.
type CoachHandler struct {
	coachService   service.CoachService
	programService service.ProgramService
	reportService  service.ReportService
	exportService  service.ExportService
	authService    service.AuthService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(
	coachService service.CoachService,
	programService service.ProgramService,
	reportService service.ReportService,
	exportService service.ExportService,
	authService service.AuthService,
) *CoachHandler {
	return &CoachHandler{
		coachService:   coachService,
		programService: programService,
		reportService:  reportService,
		exportService:  exportService,
		authService:    authService,
	}
}

// --- Request Structs ---

type ProgramRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Week        domain.WeekTemplate `json:"week" binding:"required"`
	Notes       string              `json:"notes"`
}

type CreateAssignmentRequest struct {
	AthleteID string `json:"athleteId" binding:"required"`
	ProgramID string `json:"programId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
}

type SettingsRequest struct {
	LockFutureWeeks *bool `json:"lockFutureWeeks" binding:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// --- Program Templates ---

// CreateProgram saves a new week template.
func (h *CoachHandler) CreateProgram(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), req.Name, req.Description, req.Week, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create program")
		return
	}
	c.JSON(http.StatusCreated, program)
}

// ListPrograms returns all week templates.
func (h *CoachHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programService.ListPrograms(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list programs")
		return
	}
	c.JSON(http.StatusOK, programs)
}

// GetProgram returns one week template.
func (h *CoachHandler) GetProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	program, err := h.programService.GetProgramByID(c.Request.Context(), programID)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load program")
		return
	}
	c.JSON(http.StatusOK, program)
}

// UpdateProgram fully replaces a template's content.
func (h *CoachHandler) UpdateProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.programService.UpdateProgram(c.Request.Context(), programID, req.Name, req.Description, req.Week, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update program")
		}
		return
	}
	c.JSON(http.StatusOK, program)
}

// --- Assignments & Plans ---

// CreateAssignment binds an athlete to a program from a start date.
func (h *CoachHandler) CreateAssignment(c *gin.Context) {
	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	athleteID, err := primitive.ObjectIDFromHex(req.AthleteID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid athlete ID format")
		return
	}
	programID, err := primitive.ObjectIDFromHex(req.ProgramID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format")
		return
	}

	assignment, err := h.coachService.CreateAssignment(c.Request.Context(), athleteID, programID, req.StartDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAthleteNotFound), errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAthleteNotRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// ListAssignments returns all assignments with athlete/program context.
func (h *CoachHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.coachService.ListAssignments(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list assignments")
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// GeneratePlan expands an assignment's template into its six-week plan.
func (h *CoachHandler) GeneratePlan(c *gin.Context) {
	assignmentID, ok := pathObjectID(c, "assignmentId")
	if !ok {
		return
	}

	err := h.coachService.GeneratePlan(c.Request.Context(), assignmentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound), errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Roster & Reports ---

// ListUsers returns every registered user.
func (h *CoachHandler) ListUsers(c *gin.Context) {
	users, err := h.coachService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, MapUserToResponse(&users[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetAthleteDetail returns one athlete's current week, 28-day completion
// series, and recent notes.
func (h *CoachHandler) GetAthleteDetail(c *gin.Context) {
	athleteID, ok := pathObjectID(c, "athleteId")
	if !ok {
		return
	}

	detail, err := h.coachService.GetAthleteDetail(c.Request.Context(), athleteID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrAthleteNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load athlete detail")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetReports returns current-week adherence for every assignment plus the
// recent-notes feed.
func (h *CoachHandler) GetReports(c *gin.Context) {
	overview, err := h.reportService.GetOverview(c.Request.Context(), time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute reports")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// --- Settings ---

// GetSettings returns the stored lock flag.
func (h *CoachHandler) GetSettings(c *gin.Context) {
	locked, err := h.coachService.GetLockFutureWeeks(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, domain.Settings{LockFutureWeeks: locked})
}

// UpdateSettings stores the lock flag.
func (h *CoachHandler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.coachService.SetLockFutureWeeks(c.Request.Context(), *req.LockFutureWeeks); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, domain.Settings{LockFutureWeeks: *req.LockFutureWeeks})
}

// ResetPassword sets a new password for a user.
func (h *CoachHandler) ResetPassword(c *gin.Context) {
	userID, ok := pathObjectID(c, "userId")
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), userID, req.Password); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Exports & Backup ---

// ExportCompletionsCSV streams the completion ledger as a CSV attachment.
func (h *CoachHandler) ExportCompletionsCSV(c *gin.Context) {
	data, err := h.exportService.CompletionsCSV(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to export completions")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="completions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportNotesCSV streams the note ledger as a CSV attachment.
func (h *CoachHandler) ExportNotesCSV(c *gin.Context) {
	data, err := h.exportService.NotesCSV(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to export notes")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="notes.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// CreateBackup uploads a ledger snapshot to object storage and returns a
// presigned download link.
func (h *CoachHandler) CreateBackup(c *gin.Context) {
	url, err := h.exportService.BackupToStorage(c.Request.Context(), time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Backup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// pathObjectID parses an ObjectID path parameter; aborts on failure.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", name))
		return primitive.NilObjectID, false
	}
	return id, true
}
