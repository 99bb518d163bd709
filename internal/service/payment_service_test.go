package service

import (
	"context"
	"testing"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/payment"
	"fitsphere/fitness-platform/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type paymentMocks struct {
	payments *MockPaymentRepository
	plans    *MockPlanRepository
	subs     *MockSubscriptionRepository
	gateway  *MockGateway
}

func newTestPaymentService() (PaymentService, *paymentMocks) {
	m := &paymentMocks{
		payments: new(MockPaymentRepository),
		plans:    new(MockPlanRepository),
		subs:     new(MockSubscriptionRepository),
		gateway:  new(MockGateway),
	}
	return NewPaymentService(m.payments, m.plans, m.subs, m.gateway), m
}

func TestCreateOrder_SnapshotsPlan(t *testing.T) {
	svc, m := newTestPaymentService()

	userID := primitive.NewObjectID()
	planID := primitive.NewObjectID()
	m.plans.On("GetByID", mock.Anything, planID).Return(&domain.Plan{
		ID:           planID,
		Name:         "Gold",
		MonthlyPrice: 999,
	}, nil)
	m.gateway.On("CreateOrder", int64(99900), mock.Anything).Return(&payment.Order{
		OrderID:     "order_abc",
		AmountPaise: 99900,
		Currency:    "INR",
	}, nil)
	m.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.OrderID == "order_abc" &&
			p.PlanName == "Gold" &&
			p.PlanAmount == 999 &&
			p.Status == domain.PaymentPending
	})).Return(primitive.NewObjectID(), nil)

	order, err := svc.CreateOrder(context.Background(), userID, planID, domain.CycleMonthly)

	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.OrderID)
	assert.Equal(t, int64(99900), order.AmountPaise)
	m.payments.AssertExpectations(t)
}

func TestCreateOrder_PlanMissing(t *testing.T) {
	svc, m := newTestPaymentService()

	planID := primitive.NewObjectID()
	m.plans.On("GetByID", mock.Anything, planID).Return(nil, repository.ErrNotFound)

	_, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), planID, domain.CycleMonthly)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestVerifyPayment_ValidSignatureSettlesSubscription(t *testing.T) {
	svc, m := newTestPaymentService()

	userID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()
	subID := primitive.NewObjectID()

	m.payments.On("GetByOrderID", mock.Anything, "order_abc").Return(&domain.Payment{
		ID:      paymentID,
		UserID:  userID,
		OrderID: "order_abc",
		Status:  domain.PaymentPending,
	}, nil)
	m.gateway.On("VerifySignature", "order_abc", "pay_xyz", "sig").Return(true)
	m.subs.On("GetActiveByUserID", mock.Anything, userID).Return(&domain.Subscription{
		ID:            subID,
		UserID:        userID,
		PaymentStatus: domain.PaymentStatePending,
	}, nil)
	m.subs.On("SetPaymentState", mock.Anything, subID, domain.PaymentStatePaid).Return(nil)
	m.payments.On("Finalize", mock.Anything, paymentID, domain.PaymentSuccess, "pay_xyz", &subID).Return(nil)

	record, err := svc.VerifyPayment(context.Background(), userID, "order_abc", "pay_xyz", "sig")

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, record.Status)
	assert.Equal(t, "pay_xyz", record.GatewayPayID)
	m.subs.AssertExpectations(t)
	m.payments.AssertExpectations(t)
}

func TestVerifyPayment_BadSignatureRecordsFailure(t *testing.T) {
	svc, m := newTestPaymentService()

	userID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()

	m.payments.On("GetByOrderID", mock.Anything, "order_abc").Return(&domain.Payment{
		ID:      paymentID,
		UserID:  userID,
		OrderID: "order_abc",
		Status:  domain.PaymentPending,
	}, nil)
	m.gateway.On("VerifySignature", "order_abc", "pay_xyz", "forged").Return(false)
	m.payments.On("Finalize", mock.Anything, paymentID, domain.PaymentFailed, "pay_xyz", (*primitive.ObjectID)(nil)).Return(nil)

	_, err := svc.VerifyPayment(context.Background(), userID, "order_abc", "pay_xyz", "forged")

	assert.ErrorIs(t, err, ErrSignatureInvalid)
	m.payments.AssertExpectations(t)
	m.subs.AssertNotCalled(t, "SetPaymentState", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPayment_ForeignOrder(t *testing.T) {
	svc, m := newTestPaymentService()

	m.payments.On("GetByOrderID", mock.Anything, "order_abc").Return(&domain.Payment{
		ID:      primitive.NewObjectID(),
		UserID:  primitive.NewObjectID(),
		OrderID: "order_abc",
		Status:  domain.PaymentPending,
	}, nil)

	_, err := svc.VerifyPayment(context.Background(), primitive.NewObjectID(), "order_abc", "pay_xyz", "sig")
	assert.ErrorIs(t, err, ErrPaymentNotOwned)
}

func TestVerifyPayment_AlreadyFinal(t *testing.T) {
	svc, m := newTestPaymentService()

	userID := primitive.NewObjectID()
	m.payments.On("GetByOrderID", mock.Anything, "order_abc").Return(&domain.Payment{
		ID:      primitive.NewObjectID(),
		UserID:  userID,
		OrderID: "order_abc",
		Status:  domain.PaymentSuccess,
	}, nil)

	_, err := svc.VerifyPayment(context.Background(), userID, "order_abc", "pay_xyz", "sig")
	assert.ErrorIs(t, err, ErrPaymentAlreadyFinal)
}
