package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalType enumerates the fitness objectives a user can track.
type GoalType string

const (
	GoalWeightLoss  GoalType = "weight_loss"
	GoalMuscleGain  GoalType = "muscle_gain"
	GoalEndurance   GoalType = "endurance"
	GoalFlexibility GoalType = "flexibility"
	GoalGeneral     GoalType = "general_fitness"
)

// GoalStatus is the lifecycle of a goal, controlled by its owner.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

// Goal is a user's fitness objective. Independent of any assignment, but
// referenced by assignments, progress entries and prescriptions.
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	GoalType    GoalType           `bson:"goalType" json:"goalType"`
	TargetValue float64            `bson:"targetValue,omitempty" json:"targetValue,omitempty"` // e.g. target weight in kg
	TargetDate  *time.Time         `bson:"targetDate,omitempty" json:"targetDate,omitempty"`
	Status      GoalStatus         `bson:"status" json:"status"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Progress is an append-only log entry against a goal. Entries are never
// updated or deleted; the history is the read model. GoalType is copied onto
// each entry at write time so history stays readable even if the goal is
// later retyped.
type Progress struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	GoalID     primitive.ObjectID `bson:"goalId" json:"goalId"`
	GoalType   GoalType           `bson:"goalType" json:"goalType"` // Snapshot, not a join
	Value      float64            `bson:"value" json:"value"`
	Note       string             `bson:"note,omitempty" json:"note,omitempty"`
	RecordedAt time.Time          `bson:"recordedAt" json:"recordedAt"`
}
