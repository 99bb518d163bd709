package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus is the outcome of a gateway charge attempt.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment is an immutable snapshot of a charge. PlanName and PlanAmount are
// captured at transaction time so payment history survives later plan edits,
// mirroring the goalType snapshot on Progress.
type Payment struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID  `bson:"userId" json:"userId"`
	PlanID         primitive.ObjectID  `bson:"planId" json:"planId"`
	SubscriptionID *primitive.ObjectID `bson:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
	PlanName       string              `bson:"planName" json:"planName"`     // Snapshot
	PlanAmount     float64             `bson:"planAmount" json:"planAmount"` // Snapshot, in rupees
	BillingCycle   BillingCycle        `bson:"billingCycle" json:"billingCycle"`
	OrderID        string              `bson:"orderId" json:"orderId"` // Gateway order id
	GatewayPayID   string              `bson:"gatewayPaymentId,omitempty" json:"gatewayPaymentId,omitempty"`
	Status         PaymentStatus       `bson:"status" json:"status"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}
