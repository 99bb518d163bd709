package service

import (
	"context"
	"time"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/payment"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Testify mocks for the repository interfaces, shared across the service
// tests in this package.

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type MockTrainerProfileRepository struct{ mock.Mock }

func (m *MockTrainerProfileRepository) Create(ctx context.Context, profile *domain.TrainerProfile) (primitive.ObjectID, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTrainerProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainerProfile), args.Error(1)
}

func (m *MockTrainerProfileRepository) GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.TrainerProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainerProfile), args.Error(1)
}

func (m *MockTrainerProfileRepository) List(ctx context.Context, status domain.TrainerStatus) ([]domain.TrainerProfile, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrainerProfile), args.Error(1)
}

func (m *MockTrainerProfileRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.TrainerStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTrainerProfileRepository) CountByStatus(ctx context.Context, status domain.TrainerStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserProfileRepository struct{ mock.Mock }

func (m *MockUserProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.UserProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) SetImageKey(ctx context.Context, accountID primitive.ObjectID, objectKey string) error {
	args := m.Called(ctx, accountID, objectKey)
	return args.Error(0)
}

func (m *MockUserProfileRepository) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserProfile), args.Error(1)
}

type MockPlanRepository struct{ mock.Mock }

func (m *MockPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) Replace(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) (primitive.ObjectID, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListByStatus(ctx context.Context, status domain.SubscriptionStatus) ([]domain.Subscription, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.SubscriptionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) SetPaymentState(ctx context.Context, id primitive.ObjectID, state domain.PaymentState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ExistsNonCancelledByPlanID(ctx context.Context, planID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, planID)
	return args.Bool(0), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *domain.TrainerAssignment) (primitive.ObjectID, error) {
	args := m.Called(ctx, assignment)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerAssignment, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrainerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByTrainerIDAndStatus(ctx context.Context, trainerID primitive.ObjectID, status domain.AssignmentStatus) ([]domain.TrainerAssignment, error) {
	args := m.Called(ctx, trainerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrainerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetByUserIDAndStatus(ctx context.Context, userID primitive.ObjectID, status domain.AssignmentStatus) (*domain.TrainerAssignment, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) Transition(ctx context.Context, id, trainerID primitive.ObjectID, from, to domain.AssignmentStatus, decidedAt time.Time) (*domain.TrainerAssignment, error) {
	args := m.Called(ctx, id, trainerID, from, to, decidedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) CountByStatus(ctx context.Context, status domain.AssignmentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockGoalRepository struct{ mock.Mock }

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	args := m.Called(ctx, goal)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) UpdateStatus(ctx context.Context, id, userID primitive.ObjectID, status domain.GoalStatus) error {
	args := m.Called(ctx, id, userID, status)
	return args.Error(0)
}

func (m *MockGoalRepository) ListAll(ctx context.Context) ([]domain.Goal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

type MockProgressRepository struct{ mock.Mock }

func (m *MockProgressRepository) Create(ctx context.Context, entry *domain.Progress) (primitive.ObjectID, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockProgressRepository) ListByGoalID(ctx context.Context, goalID primitive.ObjectID) ([]domain.Progress, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Progress), args.Error(1)
}

func (m *MockProgressRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Progress), args.Error(1)
}

type MockWorkoutRepository struct{ mock.Mock }

func (m *MockWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	args := m.Called(ctx, workout)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockWorkoutRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workout), args.Error(1)
}

type MockNutritionRepository struct{ mock.Mock }

func (m *MockNutritionRepository) Create(ctx context.Context, nutrition *domain.Nutrition) (primitive.ObjectID, error) {
	args := m.Called(ctx, nutrition)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockNutritionRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Nutrition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Nutrition), args.Error(1)
}

func (m *MockNutritionRepository) ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Nutrition, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Nutrition), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) (primitive.ObjectID, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Finalize(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus, gatewayPayID string, subscriptionID *primitive.ObjectID) error {
	args := m.Called(ctx, id, status, gatewayPayID, subscriptionID)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListAll(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockFeedbackRepository struct{ mock.Mock }

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) (primitive.ObjectID, error) {
	args := m.Called(ctx, feedback)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockFeedbackRepository) ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Feedback, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) CreateOrder(amountPaise int64, receipt string) (*payment.Order, error) {
	args := m.Called(amountPaise, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}
