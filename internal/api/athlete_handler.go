package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pitchplan/internal/domain"
	"pitchplan/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AthleteHandler holds the athlete-facing service dependencies.
type AthleteHandler struct {
	athleteService service.AthleteService
	reportService  service.ReportService
}

// NewAthleteHandler creates a new AthleteHandler.
func NewAthleteHandler(athleteService service.AthleteService, reportService service.ReportService) *AthleteHandler {
	return &AthleteHandler{
		athleteService: athleteService,
		reportService:  reportService,
	}
}

// --- Request Structs ---

type SetCompletionRequest struct {
	Date      string `json:"date" binding:"required"`
	Section   string `json:"section" binding:"required"`
	Completed *bool  `json:"completed" binding:"required"`
}

type SetNoteRequest struct {
	Date string `json:"date" binding:"required"`
	Note string `json:"note"`
}

// --- Handler Methods ---

// GetDashboard returns the athlete's resolved week with completions and
// notes. An optional ?week= query asks for a specific week, subject to the
// future-week lock.
func (h *AthleteHandler) GetDashboard(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	requestedWeek := 0
	if weekStr := c.Query("week"); weekStr != "" {
		week, err := strconv.Atoi(weekStr)
		if err != nil || week < 1 {
			abortWithError(c, http.StatusBadRequest, "week must be a positive integer")
			return
		}
		requestedWeek = week
	}

	dashboard, err := h.athleteService.GetDashboard(c.Request.Context(), athleteID, time.Now(), requestedWeek)
	if err != nil {
		if errors.Is(err, service.ErrWeekLocked) {
			abortWithError(c, http.StatusForbidden, "That week is not unlocked yet")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// SetCompletion toggles one (date, section) completion flag.
func (h *AthleteHandler) SetCompletion(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	var req SetCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.athleteService.SetCompletion(c.Request.Context(), athleteID, req.Date, domain.Section(req.Section), *req.Completed)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSection) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SetNote writes the athlete's note for one date.
func (h *AthleteHandler) SetNote(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	var req SetNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.athleteService.SetNote(c.Request.Context(), athleteID, req.Date, req.Note); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetReport returns the athlete's own current-week adherence numbers.
func (h *AthleteHandler) GetReport(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetAthleteReport(c.Request.Context(), athleteID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveAssignment) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to compute report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// athleteIDFromContext parses the authenticated user's ID; aborts on failure.
func athleteIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Invalid user ID in token")
		return primitive.NilObjectID, false
	}
	return id, true
}
