package service

import (
	"context"
	"errors"
	"testing"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type engagementMocks struct {
	goals       *MockGoalRepository
	progress    *MockProgressRepository
	workouts    *MockWorkoutRepository
	nutrition   *MockNutritionRepository
	feedback    *MockFeedbackRepository
	assignments *MockAssignmentRepository
	trainers    *MockTrainerProfileRepository
}

func newTestEngagementService() (EngagementService, *engagementMocks) {
	m := &engagementMocks{
		goals:       new(MockGoalRepository),
		progress:    new(MockProgressRepository),
		workouts:    new(MockWorkoutRepository),
		nutrition:   new(MockNutritionRepository),
		feedback:    new(MockFeedbackRepository),
		assignments: new(MockAssignmentRepository),
		trainers:    new(MockTrainerProfileRepository),
	}
	svc := NewEngagementService(m.goals, m.progress, m.workouts, m.nutrition, m.feedback, m.assignments, m.trainers)
	return svc, m
}

// approvedPair wires the assignment lookups so userID and trainerID count
// as an approved pair.
func (m *engagementMocks) approvedPair(userID, trainerID primitive.ObjectID) {
	m.assignments.On("GetByUserIDAndStatus", mock.Anything, userID, domain.AssignmentApproved).
		Return(&domain.TrainerAssignment{UserID: userID, TrainerID: trainerID, Status: domain.AssignmentApproved}, nil)
}

// noPair wires the assignment lookups to find nothing for userID.
func (m *engagementMocks) noPair(userID primitive.ObjectID) {
	m.assignments.On("GetByUserIDAndStatus", mock.Anything, userID, domain.AssignmentApproved).Return(nil, repository.ErrNotFound)
	m.assignments.On("GetByUserIDAndStatus", mock.Anything, userID, domain.AssignmentCompleted).Return(nil, repository.ErrNotFound)
}

func TestCreateGoal_DefaultsToActive(t *testing.T) {
	svc, m := newTestEngagementService()

	userID := primitive.NewObjectID()
	m.goals.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.Goal) bool {
		return g.UserID == userID && g.Status == domain.GoalActive
	})).Return(primitive.NewObjectID(), nil)

	goal, err := svc.CreateGoal(context.Background(), userID, &domain.Goal{GoalType: domain.GoalWeightLoss, TargetValue: 72})

	require.NoError(t, err)
	assert.Equal(t, domain.GoalActive, goal.Status)
}

func TestLogProgress_SnapshotsGoalType(t *testing.T) {
	svc, m := newTestEngagementService()

	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()
	m.goals.On("GetByID", mock.Anything, goalID).Return(&domain.Goal{ID: goalID, UserID: userID, GoalType: domain.GoalMuscleGain}, nil)
	m.progress.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Progress) bool {
		return p.GoalType == domain.GoalMuscleGain && p.Value == 81.5
	})).Return(primitive.NewObjectID(), nil)

	entry, err := svc.LogProgress(context.Background(), userID, goalID, 81.5, "bench day")

	require.NoError(t, err)
	assert.Equal(t, domain.GoalMuscleGain, entry.GoalType)
}

func TestLogProgress_ForeignGoal(t *testing.T) {
	svc, m := newTestEngagementService()

	goalID := primitive.NewObjectID()
	m.goals.On("GetByID", mock.Anything, goalID).Return(&domain.Goal{ID: goalID, UserID: primitive.NewObjectID()}, nil)

	_, err := svc.LogProgress(context.Background(), primitive.NewObjectID(), goalID, 80, "")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestCreateWorkout_RequiresApprovedPair(t *testing.T) {
	svc, m := newTestEngagementService()

	trainerAccountID := primitive.NewObjectID()
	trainerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	m.trainers.On("GetByAccountID", mock.Anything, trainerAccountID).Return(&domain.TrainerProfile{ID: trainerID}, nil)
	m.noPair(userID)

	_, err := svc.CreateWorkout(context.Background(), trainerAccountID, &domain.Workout{
		UserID:    userID,
		Title:     "Push day",
		Exercises: []domain.WorkoutExercise{{Name: "Bench press", Sets: 4, Reps: 8}},
	})
	assert.ErrorIs(t, err, ErrNotAssignedToUser)
	m.workouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateWorkout_StampsTrainerID(t *testing.T) {
	svc, m := newTestEngagementService()

	trainerAccountID := primitive.NewObjectID()
	trainerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()

	m.trainers.On("GetByAccountID", mock.Anything, trainerAccountID).Return(&domain.TrainerProfile{ID: trainerID, AccountID: trainerAccountID}, nil)
	m.approvedPair(userID, trainerID)
	m.goals.On("GetByID", mock.Anything, goalID).Return(&domain.Goal{ID: goalID, UserID: userID, GoalType: domain.GoalMuscleGain}, nil)
	m.workouts.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Workout) bool {
		return w.TrainerID == trainerID
	})).Return(primitive.NewObjectID(), nil)

	workout, err := svc.CreateWorkout(context.Background(), trainerAccountID, &domain.Workout{
		UserID:    userID,
		GoalID:    goalID,
		Title:     "Push day",
		Exercises: []domain.WorkoutExercise{{Name: "Bench press", Sets: 4, Reps: 8}},
	})

	require.NoError(t, err)
	assert.Equal(t, trainerID, workout.TrainerID)
}

func TestCreateWorkout_UnknownGoal(t *testing.T) {
	svc, m := newTestEngagementService()

	trainerAccountID := primitive.NewObjectID()
	trainerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()

	m.trainers.On("GetByAccountID", mock.Anything, trainerAccountID).Return(&domain.TrainerProfile{ID: trainerID}, nil)
	m.approvedPair(userID, trainerID)
	m.goals.On("GetByID", mock.Anything, goalID).Return(nil, repository.ErrNotFound)

	_, err := svc.CreateWorkout(context.Background(), trainerAccountID, &domain.Workout{
		UserID:    userID,
		GoalID:    goalID,
		Title:     "Push day",
		Exercises: []domain.WorkoutExercise{{Name: "Bench press", Sets: 4, Reps: 8}},
	})
	assert.ErrorIs(t, err, ErrGoalNotFound)
	m.workouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateNutrition_RequiresMeals(t *testing.T) {
	svc, m := newTestEngagementService()

	trainerAccountID := primitive.NewObjectID()
	trainerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()

	m.trainers.On("GetByAccountID", mock.Anything, trainerAccountID).Return(&domain.TrainerProfile{ID: trainerID}, nil)
	m.approvedPair(userID, trainerID)
	m.goals.On("GetByID", mock.Anything, goalID).Return(&domain.Goal{ID: goalID, UserID: userID}, nil)

	_, err := svc.CreateNutrition(context.Background(), trainerAccountID, &domain.Nutrition{
		UserID: userID,
		GoalID: goalID,
		Title:  "Cut phase",
	})
	assert.Error(t, err)
	m.nutrition.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateNutrition_ForeignGoal(t *testing.T) {
	svc, m := newTestEngagementService()

	trainerAccountID := primitive.NewObjectID()
	trainerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()

	m.trainers.On("GetByAccountID", mock.Anything, trainerAccountID).Return(&domain.TrainerProfile{ID: trainerID}, nil)
	m.approvedPair(userID, trainerID)
	m.goals.On("GetByID", mock.Anything, goalID).Return(&domain.Goal{ID: goalID, UserID: primitive.NewObjectID()}, nil)

	_, err := svc.CreateNutrition(context.Background(), trainerAccountID, &domain.Nutrition{
		UserID: userID,
		GoalID: goalID,
		Title:  "Cut phase",
		Meals:  []domain.Meal{{Name: "Breakfast", Description: "Oats and eggs"}},
	})
	assert.ErrorIs(t, err, ErrGoalNotFound)
	m.nutrition.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitFeedback_RatingBounds(t *testing.T) {
	svc, _ := newTestEngagementService()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.SubmitFeedback(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), rating, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestSubmitFeedback_NotEarned(t *testing.T) {
	svc, m := newTestEngagementService()

	userID := primitive.NewObjectID()
	m.noPair(userID)

	_, err := svc.SubmitFeedback(context.Background(), userID, primitive.NewObjectID(), 5, "great coach")
	assert.ErrorIs(t, err, ErrFeedbackNotEarned)
}

func TestSubmitFeedback_RepoErrorSurfaces(t *testing.T) {
	svc, m := newTestEngagementService()

	userID := primitive.NewObjectID()
	dbErr := errors.New("connection reset by peer")
	m.assignments.On("GetByUserIDAndStatus", mock.Anything, userID, domain.AssignmentApproved).Return(nil, dbErr)

	_, err := svc.SubmitFeedback(context.Background(), userID, primitive.NewObjectID(), 5, "great coach")

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrFeedbackNotEarned)
	m.feedback.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitFeedback_CompletedAssignmentCounts(t *testing.T) {
	svc, m := newTestEngagementService()

	userID := primitive.NewObjectID()
	trainerID := primitive.NewObjectID()

	// No approved assignment, but a completed one with the same trainer.
	m.assignments.On("GetByUserIDAndStatus", mock.Anything, userID, domain.AssignmentApproved).Return(nil, repository.ErrNotFound)
	m.assignments.On("GetByUserIDAndStatus", mock.Anything, userID, domain.AssignmentCompleted).
		Return(&domain.TrainerAssignment{UserID: userID, TrainerID: trainerID, Status: domain.AssignmentCompleted}, nil)
	m.feedback.On("Create", mock.Anything, mock.MatchedBy(func(f *domain.Feedback) bool {
		return f.TrainerID == trainerID && f.Rating == 4
	})).Return(primitive.NewObjectID(), nil)

	feedback, err := svc.SubmitFeedback(context.Background(), userID, trainerID, 4, "solid program")

	require.NoError(t, err)
	assert.Equal(t, 4, feedback.Rating)
}
