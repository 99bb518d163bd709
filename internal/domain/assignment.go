package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus is the lifecycle of a trainer request. Pending means
// "awaiting the trainer's decision" (a separate type from SubscriptionStatus
// so the two lifecycles cannot be confused).
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentApproved  AssignmentStatus = "approved"  // Trainer accepted; unlocks workout/nutrition/feedback
	AssignmentRejected  AssignmentStatus = "rejected"  // Trainer declined; retained, does not block re-assignment
	AssignmentCompleted AssignmentStatus = "completed" // Engagement finished
)

// BlockingStatuses are the states in which an assignment prevents the user
// from creating another one. A partial unique index on (userId, status in
// BlockingStatuses) enforces this at the store level.
var BlockingStatuses = []AssignmentStatus{AssignmentPending, AssignmentApproved}

// TrainerAssignment binds a user to a trainer for a time slot.
// State machine: pending -> approved | rejected, approved -> completed.
// Rejected and completed are terminal.
type TrainerAssignment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"` // TrainerProfile id
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"`
	GoalID    primitive.ObjectID `bson:"goalId" json:"goalId"`
	TimeSlot  string             `bson:"timeSlot" json:"timeSlot"` // e.g. "06:00 AM - 07:00 AM"
	Status    AssignmentStatus   `bson:"status" json:"status"`
	DecidedAt *time.Time         `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Blocks reports whether this assignment prevents creating a new one.
func (a *TrainerAssignment) Blocks() bool {
	return a.Status == AssignmentPending || a.Status == AssignmentApproved
}
