package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FitnessLevel is the self-reported experience of a user.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// UserProfile holds the onboarding details of an Account with role user.
// Completing a profile is a precondition for requesting a trainer; accounts
// without one are also invisible to the admin user listing.
type UserProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccountID    primitive.ObjectID `bson:"accountId" json:"accountId"` // Unique link to the Account
	Age          int                `bson:"age" json:"age"`
	Gender       string             `bson:"gender" json:"gender"`
	HeightCm     float64            `bson:"heightCm" json:"heightCm"`
	WeightKg     float64            `bson:"weightKg" json:"weightKg"`
	FitnessLevel FitnessLevel       `bson:"fitnessLevel" json:"fitnessLevel"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`

	// Key of the profile image in object storage. The API exposes a
	// presigned download URL instead of the raw key.
	ImageObjectKey string `bson:"imageObjectKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
