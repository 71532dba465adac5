package api

import (
	"net/http"

	"pitchplan/internal/domain"
	"pitchplan/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	programService service.ProgramService,
	coachService service.CoachService,
	athleteService service.AthleteService,
	reportService service.ReportService,
	exportService service.ExportService,
) {

	authHandler := NewAuthHandler(authService)
	coachHandler := NewCoachHandler(coachService, programService, reportService, exportService, authService)
	athleteHandler := NewAthleteHandler(athleteService, reportService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Athlete Routes ---
		athleteGroup := protected.Group("/athlete")
		athleteGroup.Use(RoleMiddleware(domain.RoleAthlete))
		{
			// GET /api/v1/athlete/dashboard?week=N
			athleteGroup.GET("/dashboard", athleteHandler.GetDashboard)
			// POST /api/v1/athlete/completions
			athleteGroup.POST("/completions", athleteHandler.SetCompletion)
			// POST /api/v1/athlete/notes
			athleteGroup.POST("/notes", athleteHandler.SetNote)
			// GET /api/v1/athlete/report
			athleteGroup.GET("/report", athleteHandler.GetReport)
		}

		// --- Coach / Admin Routes ---
		coachGroup := protected.Group("/coach")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			// Program template management
			coachGroup.POST("/programs", coachHandler.CreateProgram)
			coachGroup.GET("/programs", coachHandler.ListPrograms)
			coachGroup.GET("/programs/:programId", coachHandler.GetProgram)
			coachGroup.PUT("/programs/:programId", coachHandler.UpdateProgram)

			// Assignments and plan generation
			coachGroup.POST("/assignments", coachHandler.CreateAssignment)
			coachGroup.GET("/assignments", coachHandler.ListAssignments)
			coachGroup.POST("/assignments/:assignmentId/generate", coachHandler.GeneratePlan)

			// Roster and reports
			coachGroup.GET("/users", coachHandler.ListUsers)
			coachGroup.GET("/athletes/:athleteId", coachHandler.GetAthleteDetail)
			coachGroup.GET("/reports", coachHandler.GetReports)

			// Settings
			coachGroup.GET("/settings", coachHandler.GetSettings)
			coachGroup.PUT("/settings", coachHandler.UpdateSettings)
			coachGroup.POST("/users/:userId/reset", coachHandler.ResetPassword)

			// Exports and backup
			coachGroup.GET("/export/completions.csv", coachHandler.ExportCompletionsCSV)
			coachGroup.GET("/export/notes.csv", coachHandler.ExportNotesCSV)
			coachGroup.POST("/backup", coachHandler.CreateBackup)
		}
	}
}
