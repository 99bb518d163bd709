package service

import (
	"context"
	"errors"
	"time"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSubscriptionExists   = errors.New("an active subscription already exists for this user")
	ErrSubscriptionNotFound = errors.New("no active subscription found")
	ErrInvalidBillingCycle  = errors.New("billing cycle must be monthly or yearly")
)

// SubscriptionView is a subscription joined with its plan and the derived
// validity. IsValid is computed from status AND the date window on every
// read; the stored status alone is never trusted.
type SubscriptionView struct {
	domain.Subscription
	Plan    *domain.Plan `json:"plan,omitempty"`
	IsValid bool         `json:"isValid"`
}

// SubscriptionService manages the subscription ledger.
type SubscriptionService interface {
	Create(ctx context.Context, userID, planID primitive.ObjectID, cycle domain.BillingCycle) (*domain.Subscription, error)
	GetMySubscription(ctx context.Context, userID primitive.ObjectID) (*SubscriptionView, error)
	Cancel(ctx context.Context, userID primitive.ObjectID) error
}

// subscriptionService implements the SubscriptionService interface.
type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	planRepo repository.PlanRepository
	now      func() time.Time
}

// NewSubscriptionService creates a new instance of subscriptionService.
func NewSubscriptionService(subRepo repository.SubscriptionRepository, planRepo repository.PlanRepository) SubscriptionService {
	return &subscriptionService{
		subRepo:  subRepo,
		planRepo: planRepo,
		now:      time.Now,
	}
}

// Create opens a subscription window of 30 days (monthly) or 365 days
// (yearly) from now, priced from the plan for that cycle. The one-active-
// per-user rule is carried by the store's partial unique index, so two
// concurrent purchases cannot both land.
func (s *subscriptionService) Create(ctx context.Context, userID, planID primitive.ObjectID, cycle domain.BillingCycle) (*domain.Subscription, error) {
	if userID == primitive.NilObjectID || planID == primitive.NilObjectID {
		return nil, errors.New("user ID and plan ID are required")
	}
	if cycle != domain.CycleMonthly && cycle != domain.CycleYearly {
		return nil, ErrInvalidBillingCycle
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	start := s.now().UTC()
	sub := &domain.Subscription{
		UserID:        userID,
		PlanID:        planID,
		BillingCycle:  cycle,
		Amount:        plan.PriceFor(cycle),
		StartDate:     start,
		EndDate:       start.Add(domain.CycleDuration(cycle)),
		Status:        domain.SubscriptionActive,
		PaymentStatus: domain.PaymentStatePending,
	}

	id, err := s.subRepo.Create(ctx, sub)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrSubscriptionExists
		}
		return nil, err
	}
	sub.ID = id
	return sub, nil
}

// GetMySubscription returns the user's active-status subscription with plan
// details and derived validity.
func (s *subscriptionService) GetMySubscription(ctx context.Context, userID primitive.ObjectID) (*SubscriptionView, error) {
	sub, err := s.subRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	view := &SubscriptionView{
		Subscription: *sub,
		IsValid:      sub.IsValid(s.now()),
	}

	// A deleted plan is guarded against at delete time, but tolerate a
	// missing join rather than failing the whole read.
	if plan, perr := s.planRepo.GetByID(ctx, sub.PlanID); perr == nil {
		view.Plan = plan
	}
	return view, nil
}

// Cancel moves the user's active subscription to cancelled.
func (s *subscriptionService) Cancel(ctx context.Context, userID primitive.ObjectID) error {
	sub, err := s.subRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return s.subRepo.UpdateStatus(ctx, sub.ID, domain.SubscriptionCancelled)
}
