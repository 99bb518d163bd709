package repository

import (
	"context"
	"time"

	"fitsphere/fitness-platform/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// AccountRepository defines the interface for interacting with account data.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

// TrainerProfileRepository manages trainer profiles and their activation status.
type TrainerProfileRepository interface {
	Create(ctx context.Context, profile *domain.TrainerProfile) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error)
	GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.TrainerProfile, error)
	// List returns all trainer profiles, or only those with the given status
	// when status is non-empty.
	List(ctx context.Context, status domain.TrainerStatus) ([]domain.TrainerProfile, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.TrainerStatus) error
	CountByStatus(ctx context.Context, status domain.TrainerStatus) (int64, error)
}

// UserProfileRepository manages user onboarding profiles.
type UserProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error)
	GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.UserProfile, error)
	SetImageKey(ctx context.Context, accountID primitive.ObjectID, objectKey string) error
	ListAll(ctx context.Context) ([]domain.UserProfile, error)
}

// PlanRepository manages the subscription plan catalog.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	// Replace overwrites the full document by id, keeping CreatedAt.
	Replace(ctx context.Context, plan *domain.Plan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// SubscriptionRepository manages the subscription ledger. Create relies on a
// partial unique index (one status=active subscription per user) and returns
// ErrConflict on violation.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Subscription, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Subscription, error)
	ListByStatus(ctx context.Context, status domain.SubscriptionStatus) ([]domain.Subscription, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.SubscriptionStatus) error
	SetPaymentState(ctx context.Context, id primitive.ObjectID, state domain.PaymentState) error
	// ExistsNonCancelledByPlanID reports whether any active or expired
	// subscription still references the plan (guards plan deletion).
	ExistsNonCancelledByPlanID(ctx context.Context, planID primitive.ObjectID) (bool, error)
}

// AssignmentRepository manages trainer assignments. Create relies on a
// partial unique index (one pending/approved assignment per user) and
// returns ErrConflict on violation. Transition performs the atomic
// compare-and-set for decisions.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.TrainerAssignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerAssignment, error)
	ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerAssignment, error)
	ListByTrainerIDAndStatus(ctx context.Context, trainerID primitive.ObjectID, status domain.AssignmentStatus) ([]domain.TrainerAssignment, error)
	GetByUserIDAndStatus(ctx context.Context, userID primitive.ObjectID, status domain.AssignmentStatus) (*domain.TrainerAssignment, error)
	// Transition atomically moves the assignment from status `from` to `to`,
	// scoped to the owning trainer. Returns ErrNotFound when no document
	// matches id+trainer, ErrConflict when it exists but is not in `from`.
	Transition(ctx context.Context, id, trainerID primitive.ObjectID, from, to domain.AssignmentStatus, decidedAt time.Time) (*domain.TrainerAssignment, error)
	CountByStatus(ctx context.Context, status domain.AssignmentStatus) (int64, error)
}

// GoalRepository manages fitness goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error)
	UpdateStatus(ctx context.Context, id, userID primitive.ObjectID, status domain.GoalStatus) error
	ListAll(ctx context.Context) ([]domain.Goal, error)
}

// ProgressRepository is append-only: entries are created and listed, never
// updated or deleted.
type ProgressRepository interface {
	Create(ctx context.Context, entry *domain.Progress) (primitive.ObjectID, error)
	ListByGoalID(ctx context.Context, goalID primitive.ObjectID) ([]domain.Progress, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error)
}

// WorkoutRepository manages trainer-authored workout prescriptions.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Workout, error)
}

// NutritionRepository manages trainer-authored meal plans.
type NutritionRepository interface {
	Create(ctx context.Context, nutrition *domain.Nutrition) (primitive.ObjectID, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Nutrition, error)
	ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Nutrition, error)
}

// PaymentRepository manages gateway charge snapshots.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	// Finalize records the gateway outcome for an order.
	Finalize(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus, gatewayPayID string, subscriptionID *primitive.ObjectID) error
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
}

// FeedbackRepository manages trainer ratings.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) (primitive.ObjectID, error)
	ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Feedback, error)
	ListAll(ctx context.Context) ([]domain.Feedback, error)
}
