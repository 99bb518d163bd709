package service

import (
	"context"
	"errors"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNotAssignedToUser = errors.New("no approved assignment with this user")
	ErrFeedbackNotEarned = errors.New("feedback requires an approved assignment with this trainer")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// EngagementService covers the per-pair records: goals, progress entries,
// workout and nutrition prescriptions, and feedback. Each is an independent
// create+list pair; the only cross-checks are existence/ownership of the
// referenced ids and the approved-assignment gate on trainer-authored and
// feedback writes.
type EngagementService interface {
	// Goals
	CreateGoal(ctx context.Context, userID primitive.ObjectID, goal *domain.Goal) (*domain.Goal, error)
	ListMyGoals(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error)
	UpdateGoalStatus(ctx context.Context, userID, goalID primitive.ObjectID, status domain.GoalStatus) error

	// Progress (append-only)
	LogProgress(ctx context.Context, userID, goalID primitive.ObjectID, value float64, note string) (*domain.Progress, error)
	ListProgressByGoal(ctx context.Context, userID, goalID primitive.ObjectID) ([]domain.Progress, error)
	ListMyProgress(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error)

	// Trainer prescriptions; trainerAccountID is the authenticated account,
	// resolved to its TrainerProfile internally.
	CreateWorkout(ctx context.Context, trainerAccountID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error)
	ListWorkoutsForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	ListWorkoutsByTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]domain.Workout, error)
	CreateNutrition(ctx context.Context, trainerAccountID primitive.ObjectID, nutrition *domain.Nutrition) (*domain.Nutrition, error)
	ListNutritionForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Nutrition, error)
	ListNutritionByTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]domain.Nutrition, error)

	// Feedback (trainer-scoped)
	SubmitFeedback(ctx context.Context, userID, trainerID primitive.ObjectID, rating int, comment string) (*domain.Feedback, error)
	ListFeedbackForTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]domain.Feedback, error)
	ListFeedbackByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Feedback, error)
}

// engagementService implements the EngagementService interface.
type engagementService struct {
	goalRepo       repository.GoalRepository
	progressRepo   repository.ProgressRepository
	workoutRepo    repository.WorkoutRepository
	nutritionRepo  repository.NutritionRepository
	feedbackRepo   repository.FeedbackRepository
	assignmentRepo repository.AssignmentRepository
	trainerRepo    repository.TrainerProfileRepository
}

// NewEngagementService creates a new instance of engagementService.
func NewEngagementService(
	goalRepo repository.GoalRepository,
	progressRepo repository.ProgressRepository,
	workoutRepo repository.WorkoutRepository,
	nutritionRepo repository.NutritionRepository,
	feedbackRepo repository.FeedbackRepository,
	assignmentRepo repository.AssignmentRepository,
	trainerRepo repository.TrainerProfileRepository,
) EngagementService {
	return &engagementService{
		goalRepo:       goalRepo,
		progressRepo:   progressRepo,
		workoutRepo:    workoutRepo,
		nutritionRepo:  nutritionRepo,
		feedbackRepo:   feedbackRepo,
		assignmentRepo: assignmentRepo,
		trainerRepo:    trainerRepo,
	}
}

// === Goals ===

// CreateGoal records a new fitness goal for the caller.
func (s *engagementService) CreateGoal(ctx context.Context, userID primitive.ObjectID, goal *domain.Goal) (*domain.Goal, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if goal.GoalType == "" {
		return nil, errors.New("goal type is required")
	}

	goal.UserID = userID
	goal.Status = domain.GoalActive
	id, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = id
	return goal, nil
}

// ListMyGoals retrieves the caller's goals.
func (s *engagementService) ListMyGoals(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error) {
	return s.goalRepo.ListByUserID(ctx, userID)
}

// UpdateGoalStatus moves a goal between active, completed and paused.
func (s *engagementService) UpdateGoalStatus(ctx context.Context, userID, goalID primitive.ObjectID, status domain.GoalStatus) error {
	switch status {
	case domain.GoalActive, domain.GoalCompleted, domain.GoalPaused:
	default:
		return errors.New("invalid goal status")
	}

	err := s.goalRepo.UpdateStatus(ctx, goalID, userID, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}

// === Progress ===

// LogProgress appends a progress entry. GoalType is copied from the goal at
// write time so history remains readable if the goal is later retyped.
func (s *engagementService) LogProgress(ctx context.Context, userID, goalID primitive.ObjectID, value float64, note string) (*domain.Progress, error) {
	goal, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	entry := &domain.Progress{
		UserID:   userID,
		GoalID:   goalID,
		GoalType: goal.GoalType, // Snapshot
		Value:    value,
		Note:     note,
	}
	id, err := s.progressRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

// ListProgressByGoal retrieves the history of one of the caller's goals.
func (s *engagementService) ListProgressByGoal(ctx context.Context, userID, goalID primitive.ObjectID) ([]domain.Progress, error) {
	if _, err := s.ownedGoal(ctx, userID, goalID); err != nil {
		return nil, err
	}
	return s.progressRepo.ListByGoalID(ctx, goalID)
}

// ListMyProgress retrieves the caller's full history across goals.
func (s *engagementService) ListMyProgress(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	return s.progressRepo.ListByUserID(ctx, userID)
}

func (s *engagementService) ownedGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}

// === Prescriptions ===

// CreateWorkout records a workout prescription. The trainer must hold an
// approved assignment with the target user.
func (s *engagementService) CreateWorkout(ctx context.Context, trainerAccountID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error) {
	trainer, err := s.resolveTrainer(ctx, trainerAccountID)
	if err != nil {
		return nil, err
	}
	if err := s.requireApprovedPair(ctx, workout.UserID, trainer.ID); err != nil {
		return nil, err
	}
	if _, err := s.ownedGoal(ctx, workout.UserID, workout.GoalID); err != nil {
		return nil, err
	}
	if workout.Title == "" || len(workout.Exercises) == 0 {
		return nil, errors.New("workout requires a title and at least one exercise")
	}

	workout.TrainerID = trainer.ID
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

// ListWorkoutsForUser retrieves the workouts prescribed to a user.
func (s *engagementService) ListWorkoutsForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	return s.workoutRepo.ListByUserID(ctx, userID)
}

// ListWorkoutsByTrainer retrieves the workouts the trainer authored.
func (s *engagementService) ListWorkoutsByTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]domain.Workout, error) {
	trainer, err := s.resolveTrainer(ctx, trainerAccountID)
	if err != nil {
		return nil, err
	}
	return s.workoutRepo.ListByTrainerID(ctx, trainer.ID)
}

// CreateNutrition records a meal plan under the same gate as workouts.
func (s *engagementService) CreateNutrition(ctx context.Context, trainerAccountID primitive.ObjectID, nutrition *domain.Nutrition) (*domain.Nutrition, error) {
	trainer, err := s.resolveTrainer(ctx, trainerAccountID)
	if err != nil {
		return nil, err
	}
	if err := s.requireApprovedPair(ctx, nutrition.UserID, trainer.ID); err != nil {
		return nil, err
	}
	if _, err := s.ownedGoal(ctx, nutrition.UserID, nutrition.GoalID); err != nil {
		return nil, err
	}
	if nutrition.Title == "" || len(nutrition.Meals) == 0 {
		return nil, errors.New("nutrition plan requires a title and at least one meal")
	}

	nutrition.TrainerID = trainer.ID
	id, err := s.nutritionRepo.Create(ctx, nutrition)
	if err != nil {
		return nil, err
	}
	nutrition.ID = id
	return nutrition, nil
}

// ListNutritionForUser retrieves the meal plans prescribed to a user.
func (s *engagementService) ListNutritionForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Nutrition, error) {
	return s.nutritionRepo.ListByUserID(ctx, userID)
}

// ListNutritionByTrainer retrieves the meal plans the trainer authored.
func (s *engagementService) ListNutritionByTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]domain.Nutrition, error) {
	trainer, err := s.resolveTrainer(ctx, trainerAccountID)
	if err != nil {
		return nil, err
	}
	return s.nutritionRepo.ListByTrainerID(ctx, trainer.ID)
}

// === Feedback ===

// SubmitFeedback records a rating for a trainer. Only users whose
// assignment with that trainer reached approved (or later, completed) may
// submit.
func (s *engagementService) SubmitFeedback(ctx context.Context, userID, trainerID primitive.ObjectID, rating int, comment string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if err := s.requireApprovedPair(ctx, userID, trainerID); err != nil {
		if errors.Is(err, ErrNotAssignedToUser) {
			return nil, ErrFeedbackNotEarned
		}
		return nil, err
	}

	feedback := &domain.Feedback{
		UserID:    userID,
		TrainerID: trainerID,
		Rating:    rating,
		Comment:   comment,
	}
	id, err := s.feedbackRepo.Create(ctx, feedback)
	if err != nil {
		return nil, err
	}
	feedback.ID = id
	return feedback, nil
}

// ListFeedbackForTrainer retrieves feedback left for the calling trainer.
func (s *engagementService) ListFeedbackForTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]domain.Feedback, error) {
	trainer, err := s.resolveTrainer(ctx, trainerAccountID)
	if err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByTrainerID(ctx, trainer.ID)
}

// ListFeedbackByTrainerID retrieves feedback for a trainer by profile id,
// without resolving through the caller's account. Used by the admin view.
func (s *engagementService) ListFeedbackByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Feedback, error) {
	return s.feedbackRepo.ListByTrainerID(ctx, trainerID)
}

// --- helpers ---

func (s *engagementService) resolveTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) (*domain.TrainerProfile, error) {
	trainer, err := s.trainerRepo.GetByAccountID(ctx, trainerAccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

// requireApprovedPair checks that user and trainer are bound by an approved
// or completed assignment.
func (s *engagementService) requireApprovedPair(ctx context.Context, userID, trainerID primitive.ObjectID) error {
	for _, status := range []domain.AssignmentStatus{domain.AssignmentApproved, domain.AssignmentCompleted} {
		assignment, err := s.assignmentRepo.GetByUserIDAndStatus(ctx, userID, status)
		if err == nil && assignment.TrainerID == trainerID {
			return nil
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	return ErrNotAssignedToUser
}
