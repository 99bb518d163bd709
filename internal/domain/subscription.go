package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionStatus is the ledger state of a purchase. Deliberately a
// separate type from AssignmentStatus: "active" here means the record has
// not been cancelled or swept, NOT that the window is still open. Validity
// must always be derived via IsValid, never read off Status alone.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// PaymentState tracks whether the charge behind a subscription settled.
type PaymentState string

const (
	PaymentStatePending PaymentState = "pending"
	PaymentStatePaid    PaymentState = "paid"
)

// Subscription records a user's purchase of a Plan for one billing cycle.
// Amount is captured at purchase time and never re-joined from the plan.
// At most one subscription with status=active may exist per user; a partial
// unique index on (userId, status=active) carries that invariant.
type Subscription struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	PlanID        primitive.ObjectID `bson:"planId" json:"planId"`
	BillingCycle  BillingCycle       `bson:"billingCycle" json:"billingCycle"`
	Amount        float64            `bson:"amount" json:"amount"`
	StartDate     time.Time          `bson:"startDate" json:"startDate"`
	EndDate       time.Time          `bson:"endDate" json:"endDate"`
	Status        SubscriptionStatus `bson:"status" json:"status"`
	PaymentStatus PaymentState       `bson:"paymentStatus" json:"paymentStatus"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CycleDuration returns the validity window length for a billing cycle:
// 30 days for monthly, 365 for yearly.
func CycleDuration(cycle BillingCycle) time.Duration {
	if cycle == CycleYearly {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// IsValid reports whether the subscription is currently usable. There is no
// background expiry sweep, so a lapsed window can still carry status=active;
// every read path must go through this derivation.
func (s *Subscription) IsValid(now time.Time) bool {
	return s.Status == SubscriptionActive && !now.After(s.EndDate)
}
