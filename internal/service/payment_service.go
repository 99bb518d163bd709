package service

import (
	"context"
	"errors"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/payment"
	"fitsphere/fitness-platform/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPaymentNotFound     = errors.New("payment not found for this order")
	ErrPaymentNotOwned     = errors.New("payment does not belong to this user")
	ErrSignatureInvalid    = errors.New("payment signature verification failed")
	ErrPaymentAlreadyFinal = errors.New("payment has already been finalized")
)

// OrderResponse is what the client feeds into the checkout widget.
type OrderResponse struct {
	OrderID     string  `json:"orderId"`
	AmountPaise int64   `json:"amount"`
	Currency    string  `json:"currency"`
	PlanName    string  `json:"planName"`
	PlanAmount  float64 `json:"planAmount"`
}

// PaymentService drives the gateway checkout flow: create an order, let the
// client pay through the widget, then verify the returned signature and
// settle the subscription.
type PaymentService interface {
	CreateOrder(ctx context.Context, userID, planID primitive.ObjectID, cycle domain.BillingCycle) (*OrderResponse, error)
	// VerifyPayment finalizes the payment for an order. On a valid
	// signature the user's pending subscription is marked paid; on an
	// invalid one the payment is recorded as failed.
	VerifyPayment(ctx context.Context, userID primitive.ObjectID, orderID, paymentID, signature string) (*domain.Payment, error)
	ListMyPayments(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error)
	ListAllPayments(ctx context.Context) ([]domain.Payment, error)
}

// paymentService implements the PaymentService interface.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	planRepo    repository.PlanRepository
	subRepo     repository.SubscriptionRepository
	gateway     payment.Gateway
}

// NewPaymentService creates a new instance of paymentService.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	planRepo repository.PlanRepository,
	subRepo repository.SubscriptionRepository,
	gateway payment.Gateway,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		planRepo:    planRepo,
		subRepo:     subRepo,
		gateway:     gateway,
	}
}

// CreateOrder registers a gateway order for a plan purchase and records a
// pending Payment snapshot. Plan name and amount are captured now so the
// history is immune to later catalog edits.
func (s *paymentService) CreateOrder(ctx context.Context, userID, planID primitive.ObjectID, cycle domain.BillingCycle) (*OrderResponse, error) {
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

	amount := plan.PriceFor(cycle)
	amountPaise := int64(amount * 100)

	order, err := s.gateway.CreateOrder(amountPaise, uuid.NewString())
	if err != nil {
		return nil, err
	}

	record := &domain.Payment{
		UserID:       userID,
		PlanID:       planID,
		PlanName:     plan.Name,   // Snapshot
		PlanAmount:   amount,      // Snapshot
		BillingCycle: cycle,
		OrderID:      order.OrderID,
		Status:       domain.PaymentPending,
	}
	if _, err := s.paymentRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &OrderResponse{
		OrderID:     order.OrderID,
		AmountPaise: order.AmountPaise,
		Currency:    order.Currency,
		PlanName:    plan.Name,
		PlanAmount:  amount,
	}, nil
}

// VerifyPayment checks the checkout signature and settles the payment.
func (s *paymentService) VerifyPayment(ctx context.Context, userID primitive.ObjectID, orderID, paymentID, signature string) (*domain.Payment, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, errors.New("order ID, payment ID, and signature are required")
	}

	record, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, ErrPaymentNotOwned
	}
	if record.Status != domain.PaymentPending {
		return nil, ErrPaymentAlreadyFinal
	}

	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		if err := s.paymentRepo.Finalize(ctx, record.ID, domain.PaymentFailed, paymentID, nil); err != nil {
			return nil, err
		}
		return nil, ErrSignatureInvalid
	}

	// Settle the user's pending subscription, if one is waiting on this
	// charge. A payment without a subscription (user paid before
	// subscribing) still finalizes cleanly.
	var subID *primitive.ObjectID
	if sub, serr := s.subRepo.GetActiveByUserID(ctx, userID); serr == nil {
		if sub.PaymentStatus == domain.PaymentStatePending {
			if err := s.subRepo.SetPaymentState(ctx, sub.ID, domain.PaymentStatePaid); err != nil {
				return nil, err
			}
		}
		subID = &sub.ID
	}

	if err := s.paymentRepo.Finalize(ctx, record.ID, domain.PaymentSuccess, paymentID, subID); err != nil {
		return nil, err
	}

	record.Status = domain.PaymentSuccess
	record.GatewayPayID = paymentID
	record.SubscriptionID = subID
	return record, nil
}

// ListMyPayments retrieves the caller's payment history.
func (s *paymentService) ListMyPayments(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error) {
	return s.paymentRepo.ListByUserID(ctx, userID)
}

// ListAllPayments retrieves every payment (admin view).
func (s *paymentService) ListAllPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.ListAll(ctx)
}
