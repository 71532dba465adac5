package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pitchplan/internal/api"
	"pitchplan/internal/config"
	"pitchplan/internal/plan"
	"pitchplan/internal/repository/mongo"
	"pitchplan/internal/service"
	"pitchplan/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting PitchPlan Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("programs"))
		mongo.EnsureAssignmentIndexes(ctx, appDB.Collection("assignments"))
		mongo.EnsurePlanWeekIndexes(ctx, appDB.Collection("plan_weeks"))
		mongo.EnsureCompletionIndexes(ctx, appDB.Collection("completions"))
		mongo.EnsureNoteIndexes(ctx, appDB.Collection("daily_notes"))
		mongo.EnsureSettingsIndexes(ctx, appDB.Collection("settings"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	assignmentRepo := mongo.NewMongoAssignmentRepository(appDB)
	planWeekRepo := mongo.NewMongoPlanWeekRepository(appDB)
	completionRepo := mongo.NewMongoCompletionRepository(appDB)
	noteRepo := mongo.NewMongoNoteRepository(appDB)
	settingsRepo := mongo.NewMongoSettingsRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	programService := service.NewProgramService(programRepo)
	coachService := service.NewCoachService(userRepo, programRepo, assignmentRepo, planWeekRepo, completionRepo, noteRepo, settingsRepo, plan.DefaultThrowingOverrides)
	athleteService := service.NewAthleteService(assignmentRepo, programRepo, planWeekRepo, completionRepo, noteRepo, settingsRepo)
	reportService := service.NewReportService(userRepo, assignmentRepo, planWeekRepo, completionRepo, noteRepo)
	exportService := service.NewExportService(userRepo, completionRepo, noteRepo, fileStorage)

	// --- Seed Data ---
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := programService.EnsureSeedProgram(seedCtx); err != nil {
		log.Printf("WARN: Failed to seed base program: %v", err)
	}
	seedCancel()

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, programService, coachService, athleteService, reportService, exportService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
