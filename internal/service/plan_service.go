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
	ErrPlanNotFound   = errors.New("plan not found")
	ErrPlanNameTaken  = errors.New("a plan with this name already exists")
	ErrPlanInUse      = errors.New("plan has active subscriptions and cannot be deleted")
	ErrInvalidPricing = errors.New("plan prices must be non-negative")
)

// PlanService manages the subscription plan catalog. Reads are public;
// mutations are admin-only (enforced at the route layer).
type PlanService interface {
	Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// planService implements the PlanService interface.
type planService struct {
	planRepo repository.PlanRepository
	subRepo  repository.SubscriptionRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, subRepo repository.SubscriptionRepository) PlanService {
	return &planService{
		planRepo: planRepo,
		subRepo:  subRepo,
	}
}

// Create adds a plan to the catalog. Field presence (prices and every
// amenity flag) is enforced at the binding layer; value sanity here.
func (s *planService) Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrPlanNameTaken
		}
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

// GetByID retrieves a single catalog entry.
func (s *planService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// List retrieves the full catalog.
func (s *planService) List(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.List(ctx)
}

// Update replaces the full plan document by id, re-running validation.
func (s *planService) Update(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	if plan.ID == primitive.NilObjectID {
		return nil, errors.New("plan ID is required")
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	if err := s.planRepo.Replace(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan unless a non-cancelled subscription still
// references it, so the ledger can never point at a missing plan.
func (s *planService) Delete(ctx context.Context, id primitive.ObjectID) error {
	inUse, err := s.subRepo.ExistsNonCancelledByPlanID(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrPlanInUse
	}

	if err := s.planRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

func validatePlan(plan *domain.Plan) error {
	if plan.Name == "" {
		return errors.New("plan name is required")
	}
	if plan.MonthlyPrice < 0 || plan.YearlyPrice < 0 {
		return ErrInvalidPricing
	}
	return nil
}
