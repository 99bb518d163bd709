package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerStatus tracks admin-controlled activation of a trainer.
type TrainerStatus string

const (
	TrainerStatusNew      TrainerStatus = "new"      // Registered, awaiting admin review
	TrainerStatusActive   TrainerStatus = "active"   // Approved, may log in and take clients
	TrainerStatusInactive TrainerStatus = "inactive" // Deactivated by admin
)

// Specialization enumerates the coaching areas a trainer can offer.
type Specialization string

const (
	SpecWeightLoss Specialization = "weight_loss"
	SpecMuscleGain Specialization = "muscle_gain"
	SpecYoga       Specialization = "yoga"
	SpecCardio     Specialization = "cardio"
	SpecCrossfit   Specialization = "crossfit"
	SpecGeneral    Specialization = "general_fitness"
)

// ValidSpecialization reports whether s is a known specialization.
func ValidSpecialization(s Specialization) bool {
	switch s {
	case SpecWeightLoss, SpecMuscleGain, SpecYoga, SpecCardio, SpecCrossfit, SpecGeneral:
		return true
	}
	return false
}

// TrainerProfile is the one-to-one extension of an Account with role trainer.
// A trainer cannot authenticate unless Status == TrainerStatusActive; the
// login path enforces this and distinguishes "new" from "inactive" so the
// client can render the right message.
type TrainerProfile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccountID       primitive.ObjectID `bson:"accountId" json:"accountId"` // Unique link to the Account
	Phone           string             `bson:"phone" json:"phone"`
	Specialization  Specialization     `bson:"specialization" json:"specialization"`
	ExperienceYears int                `bson:"experienceYears" json:"experienceYears"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Status          TrainerStatus      `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
