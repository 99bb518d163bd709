package api

import (
	"errors"
	"net/http"
	"time"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementHandler handles goals, progress, prescriptions and feedback.
type EngagementHandler struct {
	engagementService service.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(engagementService service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// --- Goals ---

type createGoalRequest struct {
	GoalType    domain.GoalType `json:"goalType" binding:"required,oneof=weight_loss muscle_gain endurance flexibility general_fitness"`
	TargetValue float64         `json:"targetValue"`
	TargetDate  *time.Time      `json:"targetDate"`
	Notes       string          `json:"notes"`
}

type goalStatusRequest struct {
	Status domain.GoalStatus `json:"status" binding:"required,oneof=active completed paused"`
}

// CreateGoal handles POST /users/goals
func (h *EngagementHandler) CreateGoal(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	goal := &domain.Goal{
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
		TargetDate:  req.TargetDate,
		Notes:       req.Notes,
	}

	created, err := h.engagementService.CreateGoal(c.Request.Context(), userID, goal)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListMyGoals handles GET /users/goals
func (h *EngagementHandler) ListMyGoals(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	goals, err := h.engagementService.ListMyGoals(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

// UpdateGoalStatus handles PATCH /users/goals/:goalId/status
func (h *EngagementHandler) UpdateGoalStatus(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	goalID, err := primitive.ObjectIDFromHex(c.Param("goalId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	var req goalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.engagementService.UpdateGoalStatus(c.Request.Context(), userID, goalID, req.Status); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update goal")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal status updated"})
}

// --- Progress ---

type logProgressRequest struct {
	GoalID string   `json:"goalId" binding:"required"`
	Value  *float64 `json:"value" binding:"required"`
	Note   string   `json:"note"`
}

// LogProgress handles POST /users/progress
func (h *EngagementHandler) LogProgress(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req logProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	goalID, err := primitive.ObjectIDFromHex(req.GoalID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	entry, err := h.engagementService.LogProgress(c.Request.Context(), userID, goalID, *req.Value, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log progress")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListProgress handles GET /users/progress with an optional goalId query.
func (h *EngagementHandler) ListProgress(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if goalHex := c.Query("goalId"); goalHex != "" {
		goalID, err := primitive.ObjectIDFromHex(goalHex)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid goal ID format")
			return
		}
		entries, err := h.engagementService.ListProgressByGoal(c.Request.Context(), userID, goalID)
		if err != nil {
			if errors.Is(err, service.ErrGoalNotFound) {
				abortWithError(c, http.StatusNotFound, err.Error())
			} else {
				abortWithError(c, http.StatusInternalServerError, "Failed to list progress")
			}
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	entries, err := h.engagementService.ListMyProgress(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list progress")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// --- Prescriptions ---

type exerciseRequest struct {
	Name string `json:"name" binding:"required"`
	Sets int    `json:"sets" binding:"required,gt=0"`
	Reps int    `json:"reps" binding:"required,gt=0"`
	Rest string `json:"rest"`
}

type createWorkoutRequest struct {
	UserID      string            `json:"userId" binding:"required"`
	GoalID      string            `json:"goalId" binding:"required"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Exercises   []exerciseRequest `json:"exercises" binding:"required,min=1,dive"`
	Schedule    string            `json:"schedule"`
}

type mealRequest struct {
	Name        string `json:"name" binding:"required"`
	Calories    int    `json:"calories"`
	Description string `json:"description" binding:"required"`
}

type createNutritionRequest struct {
	UserID      string        `json:"userId" binding:"required"`
	GoalID      string        `json:"goalId" binding:"required"`
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Meals       []mealRequest `json:"meals" binding:"required,min=1,dive"`
}

// CreateWorkout handles POST /trainers/workouts
func (h *EngagementHandler) CreateWorkout(c *gin.Context) {
	trainerAccountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req createWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	goalID, err := primitive.ObjectIDFromHex(req.GoalID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	workout := &domain.Workout{
		UserID:      userID,
		GoalID:      goalID,
		Title:       req.Title,
		Description: req.Description,
		Schedule:    req.Schedule,
	}
	for _, e := range req.Exercises {
		workout.Exercises = append(workout.Exercises, domain.WorkoutExercise{
			Name: e.Name,
			Sets: e.Sets,
			Reps: e.Reps,
			Rest: e.Rest,
		})
	}

	created, err := h.engagementService.CreateWorkout(c.Request.Context(), trainerAccountID, workout)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound), errors.Is(err, service.ErrGoalNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAssignedToUser):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create workout")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListMyWorkouts handles GET /users/workouts
func (h *EngagementHandler) ListMyWorkouts(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	workouts, err := h.engagementService.ListWorkoutsForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// ListAuthoredWorkouts handles GET /trainers/workouts
func (h *EngagementHandler) ListAuthoredWorkouts(c *gin.Context) {
	trainerAccountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	workouts, err := h.engagementService.ListWorkoutsByTrainer(c.Request.Context(), trainerAccountID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list workouts")
		}
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// CreateNutrition handles POST /trainers/nutrition
func (h *EngagementHandler) CreateNutrition(c *gin.Context) {
	trainerAccountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req createNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	goalID, err := primitive.ObjectIDFromHex(req.GoalID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	nutrition := &domain.Nutrition{
		UserID:      userID,
		GoalID:      goalID,
		Title:       req.Title,
		Description: req.Description,
	}
	for _, m := range req.Meals {
		nutrition.Meals = append(nutrition.Meals, domain.Meal{
			Name:        m.Name,
			Calories:    m.Calories,
			Description: m.Description,
		})
	}

	created, err := h.engagementService.CreateNutrition(c.Request.Context(), trainerAccountID, nutrition)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound), errors.Is(err, service.ErrGoalNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAssignedToUser):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create nutrition plan")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListMyNutrition handles GET /users/nutrition
func (h *EngagementHandler) ListMyNutrition(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	plans, err := h.engagementService.ListNutritionForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list nutrition plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// ListAuthoredNutrition handles GET /trainers/nutrition
func (h *EngagementHandler) ListAuthoredNutrition(c *gin.Context) {
	trainerAccountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	plans, err := h.engagementService.ListNutritionByTrainer(c.Request.Context(), trainerAccountID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list nutrition plans")
		}
		return
	}
	c.JSON(http.StatusOK, plans)
}

// --- Feedback ---

type submitFeedbackRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// SubmitFeedback handles POST /users/feedback
func (h *EngagementHandler) SubmitFeedback(c *gin.Context) {
	userID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	feedback, err := h.engagementService.SubmitFeedback(c.Request.Context(), userID, trainerID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrFeedbackNotEarned):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit feedback")
		}
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// ListMyFeedback handles GET /trainers/feedback
func (h *EngagementHandler) ListMyFeedback(c *gin.Context) {
	trainerAccountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	feedback, err := h.engagementService.ListFeedbackForTrainer(c.Request.Context(), trainerAccountID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list feedback")
		}
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// ListTrainerFeedback handles GET /admin/trainers/:trainerId/feedback
func (h *EngagementHandler) ListTrainerFeedback(c *gin.Context) {
	trainerID, err := primitive.ObjectIDFromHex(c.Param("trainerId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	feedback, err := h.engagementService.ListFeedbackByTrainerID(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list feedback")
		return
	}
	c.JSON(http.StatusOK, feedback)
}
