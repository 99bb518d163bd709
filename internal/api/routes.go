package api

import (
	"net/http"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"
	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler onto the router. Route groups mirror the
// access model: /auth and plan reads are public, /users, /trainers and
// /admin are role-gated behind the auth middleware.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	accountRepo repository.AccountRepository,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
	subService service.SubscriptionService,
	assignmentService service.AssignmentService,
	engagementService service.EngagementService,
	paymentService service.PaymentService,
	adminService service.AdminService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService)
	subHandler := NewSubscriptionHandler(subService)
	assignmentHandler := NewAssignmentHandler(assignmentService)
	engagementHandler := NewEngagementHandler(engagementService)
	paymentHandler := NewPaymentHandler(paymentService)
	adminHandler := NewAdminHandler(adminService)

	authMiddleware := AuthMiddleware(jwtSecret, accountRepo)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	// --- Public routes ---
	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// The plan catalog is browsable without an account.
	apiV1.GET("/plans", planHandler.ListPlans)
	apiV1.GET("/plans/:planId", planHandler.GetPlan)

	// --- Authenticated routes ---
	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			accountID, err := getAccountIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get account ID from token")
				return
			}
			role, _ := getRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"accountId": accountID.Hex(), "role": role})
		})

		// --- User routes ---
		userGroup := protected.Group("/users")
		userGroup.Use(RoleMiddleware(domain.RoleUser))
		{
			userGroup.PUT("/profile", profileHandler.UpsertProfile)
			userGroup.GET("/profile", profileHandler.GetMyProfile)
			userGroup.POST("/profile/image/upload-url", profileHandler.RequestImageUpload)
			userGroup.POST("/profile/image/confirm", profileHandler.ConfirmImageUpload)
			userGroup.GET("/trainers", profileHandler.ListTrainers)

			userGroup.POST("/subscriptions", subHandler.CreateSubscription)
			userGroup.GET("/subscriptions/me", subHandler.GetMySubscription)
			userGroup.POST("/subscriptions/cancel", subHandler.CancelSubscription)

			userGroup.POST("/assignments", assignmentHandler.AssignTrainer)
			userGroup.GET("/assignments/trainer", assignmentHandler.GetMyTrainer)

			userGroup.POST("/goals", engagementHandler.CreateGoal)
			userGroup.GET("/goals", engagementHandler.ListMyGoals)
			userGroup.PATCH("/goals/:goalId/status", engagementHandler.UpdateGoalStatus)

			userGroup.POST("/progress", engagementHandler.LogProgress)
			userGroup.GET("/progress", engagementHandler.ListProgress)

			userGroup.GET("/workouts", engagementHandler.ListMyWorkouts)
			userGroup.GET("/nutrition", engagementHandler.ListMyNutrition)
			userGroup.POST("/feedback", engagementHandler.SubmitFeedback)

			userGroup.POST("/payments/order", paymentHandler.CreateOrder)
			userGroup.POST("/payments/verify", paymentHandler.VerifyPayment)
			userGroup.GET("/payments", paymentHandler.ListMyPayments)
		}

		// --- Trainer routes ---
		trainerGroup := protected.Group("/trainers")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerGroup.GET("/assignments", assignmentHandler.ListAssignments)
			trainerGroup.GET("/assignments/pending", assignmentHandler.ListPendingAssignments)
			trainerGroup.POST("/assignments/:assignmentId/decision", assignmentHandler.DecideAssignment)
			trainerGroup.POST("/assignments/:assignmentId/complete", assignmentHandler.CompleteAssignment)

			trainerGroup.POST("/workouts", engagementHandler.CreateWorkout)
			trainerGroup.GET("/workouts", engagementHandler.ListAuthoredWorkouts)
			trainerGroup.POST("/nutrition", engagementHandler.CreateNutrition)
			trainerGroup.GET("/nutrition", engagementHandler.ListAuthoredNutrition)
			trainerGroup.GET("/feedback", engagementHandler.ListMyFeedback)
		}

		// --- Admin routes ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.GET("/trainers", adminHandler.ListTrainers)
			adminGroup.PATCH("/trainers/:trainerId/status", adminHandler.SetTrainerStatus)
			adminGroup.GET("/trainers/:trainerId/feedback", engagementHandler.ListTrainerFeedback)
			adminGroup.GET("/dashboard", adminHandler.Dashboard)

			adminGroup.POST("/plans", planHandler.CreatePlan)
			adminGroup.PUT("/plans/:planId", planHandler.UpdatePlan)
			adminGroup.DELETE("/plans/:planId", planHandler.DeletePlan)

			adminGroup.GET("/payments", paymentHandler.ListAllPayments)
		}
	}
}
