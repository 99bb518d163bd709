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

	"fitsphere/fitness-platform/internal/api"
	"fitsphere/fitness-platform/internal/config"
	"fitsphere/fitness-platform/internal/payment"
	"fitsphere/fitness-platform/internal/repository/mongo"
	"fitsphere/fitness-platform/internal/service"
	"fitsphere/fitness-platform/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting FitSphere server...")

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
	// Index creation runs in the background; the unique indexes carry
	// invariants (one active subscription per user, one open assignment
	// per user), so failures are logged loudly.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		ensure := func(name string, err error) {
			if err != nil {
				log.Printf("ERROR: Failed to ensure %s indexes: %v", name, err)
			}
		}
		ensure("account", mongo.EnsureAccountIndexes(ctx, appDB.Collection("accounts")))
		ensure("trainer profile", mongo.EnsureTrainerProfileIndexes(ctx, appDB.Collection("trainer_profiles")))
		ensure("user profile", mongo.EnsureUserProfileIndexes(ctx, appDB.Collection("user_profiles")))
		ensure("plan", mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans")))
		ensure("subscription", mongo.EnsureSubscriptionIndexes(ctx, appDB.Collection("subscriptions")))
		ensure("assignment", mongo.EnsureAssignmentIndexes(ctx, appDB.Collection("trainer_assignments")))
		ensure("goal", mongo.EnsureGoalIndexes(ctx, appDB.Collection("goals")))
		ensure("progress", mongo.EnsureProgressIndexes(ctx, appDB.Collection("progress_entries")))
		ensure("workout", mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts")))
		ensure("nutrition", mongo.EnsureNutritionIndexes(ctx, appDB.Collection("nutrition_plans")))
		ensure("payment", mongo.EnsurePaymentIndexes(ctx, appDB.Collection("payments")))
		ensure("feedback", mongo.EnsureFeedbackIndexes(ctx, appDB.Collection("feedback")))
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
	accountRepo := mongo.NewMongoAccountRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerProfileRepository(appDB)
	profileRepo := mongo.NewMongoUserProfileRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	subRepo := mongo.NewMongoSubscriptionRepository(appDB)
	assignmentRepo := mongo.NewMongoAssignmentRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	nutritionRepo := mongo.NewMongoNutritionRepository(appDB)
	paymentRepo := mongo.NewMongoPaymentRepository(appDB)
	feedbackRepo := mongo.NewMongoFeedbackRepository(appDB)

	// --- Initialize Gateway ---
	gateway := payment.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(accountRepo, trainerRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo, trainerRepo, fileStorage)
	planService := service.NewPlanService(planRepo, subRepo)
	subService := service.NewSubscriptionService(subRepo, planRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, accountRepo, profileRepo, trainerRepo, planRepo, goalRepo)
	engagementService := service.NewEngagementService(goalRepo, progressRepo, workoutRepo, nutritionRepo, feedbackRepo, assignmentRepo, trainerRepo)
	paymentService := service.NewPaymentService(paymentRepo, planRepo, subRepo, gateway)
	adminService := service.NewAdminService(accountRepo, profileRepo, trainerRepo, goalRepo, subRepo, planRepo, assignmentRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		accountRepo,
		authService,
		profileService,
		planService,
		subService,
		assignmentService,
		engagementService,
		paymentService,
		adminService,
	)

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
