package api

import (
	"context"
	"net/http"
	"testing"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockEngagementService struct{ mock.Mock }

var _ service.EngagementService = (*mockEngagementService)(nil)

func (m *mockEngagementService) CreateGoal(ctx context.Context, userID primitive.ObjectID, goal *domain.Goal) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *mockEngagementService) ListMyGoals(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *mockEngagementService) UpdateGoalStatus(ctx context.Context, userID, goalID primitive.ObjectID, status domain.GoalStatus) error {
	args := m.Called(ctx, userID, goalID, status)
	return args.Error(0)
}

func (m *mockEngagementService) LogProgress(ctx context.Context, userID, goalID primitive.ObjectID, value float64, note string) (*domain.Progress, error) {
	args := m.Called(ctx, userID, goalID, value, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *mockEngagementService) ListProgressByGoal(ctx context.Context, userID, goalID primitive.ObjectID) ([]domain.Progress, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Progress), args.Error(1)
}

func (m *mockEngagementService) ListMyProgress(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Progress), args.Error(1)
}

func (m *mockEngagementService) CreateWorkout(ctx context.Context, trainerAccountID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error) {
	args := m.Called(ctx, trainerAccountID, workout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workout), args.Error(1)
}

func (m *mockEngagementService) ListWorkoutsForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *mockEngagementService) ListWorkoutsByTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, trainerAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *mockEngagementService) CreateNutrition(ctx context.Context, trainerAccountID primitive.ObjectID, nutrition *domain.Nutrition) (*domain.Nutrition, error) {
	args := m.Called(ctx, trainerAccountID, nutrition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Nutrition), args.Error(1)
}

func (m *mockEngagementService) ListNutritionForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Nutrition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Nutrition), args.Error(1)
}

func (m *mockEngagementService) ListNutritionByTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]domain.Nutrition, error) {
	args := m.Called(ctx, trainerAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Nutrition), args.Error(1)
}

func (m *mockEngagementService) SubmitFeedback(ctx context.Context, userID, trainerID primitive.ObjectID, rating int, comment string) (*domain.Feedback, error) {
	args := m.Called(ctx, userID, trainerID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

func (m *mockEngagementService) ListFeedbackForTrainer(ctx context.Context, trainerAccountID primitive.ObjectID) ([]domain.Feedback, error) {
	args := m.Called(ctx, trainerAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *mockEngagementService) ListFeedbackByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Feedback, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

// engagementRouter mounts the handler behind a stub that injects the
// authenticated identity, sidestepping token issuance.
func engagementRouter(svc service.EngagementService, accountID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextAccountIDKey, accountID)
		c.Set(ContextRoleKey, domain.RoleUser)
	})
	handler := NewEngagementHandler(svc)
	router.POST("/users/progress", handler.LogProgress)
	return router
}

func TestLogProgressEndpoint_ZeroValueAccepted(t *testing.T) {
	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()

	svc := new(mockEngagementService)
	svc.On("LogProgress", mock.Anything, userID, goalID, 0.0, "back to baseline").
		Return(&domain.Progress{UserID: userID, GoalID: goalID, Value: 0}, nil)
	router := engagementRouter(svc, userID)

	// Value 0 is a legitimate measurement and must survive binding.
	rec := postJSON(router, "/users/progress", gin.H{
		"goalId": goalID.Hex(),
		"value":  0,
		"note":   "back to baseline",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestLogProgressEndpoint_MissingValueRejected(t *testing.T) {
	userID := primitive.NewObjectID()

	svc := new(mockEngagementService)
	router := engagementRouter(svc, userID)

	rec := postJSON(router, "/users/progress", gin.H{
		"goalId": primitive.NewObjectID().Hex(),
		"note":   "no measurement taken",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "LogProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
