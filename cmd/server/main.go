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

	"nutriwings/health-app/internal/api"
	"nutriwings/health-app/internal/config"
	"nutriwings/health-app/internal/repository/mongo"
	"nutriwings/health-app/internal/service"
	"nutriwings/health-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Health App Server...")

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
		mongo.EnsureDietIndexes(ctx, appDB.Collection("diet_entries"))
		mongo.EnsureSleepIndexes(ctx, appDB.Collection("sleep_entries"))
		mongo.EnsureWaterIndexes(ctx, appDB.Collection("water_entries"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workout_sessions"))
		mongo.EnsureScoreIndexes(ctx, appDB.Collection("strength_scores"))
		mongo.EnsureTemplateIndexes(ctx, appDB.Collection("workout_templates"))
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
	dietRepo := mongo.NewMongoDietRepository(appDB)
	sleepRepo := mongo.NewMongoSleepRepository(appDB)
	waterRepo := mongo.NewMongoWaterRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	scoreRepo := mongo.NewMongoScoreRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	dietService := service.NewDietService(dietRepo, userRepo, fileStorage)
	recoveryService := service.NewRecoveryService(userRepo, sleepRepo, waterRepo)
	workoutService := service.NewWorkoutService(userRepo, workoutRepo)
	strengthService := service.NewStrengthService(userRepo, dietRepo, sleepRepo, waterRepo, workoutRepo, scoreRepo)
	templateService := service.NewTemplateService(templateRepo, fileStorage)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, dietService, recoveryService,
		workoutService, strengthService, templateService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
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
