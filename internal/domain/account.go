package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between account roles
type Role string

// Define constants for roles
const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
// Middleware and registration match against these constants only;
// an unknown role string is rejected, never defaulted.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// Account represents an authenticated identity in the system.
// Role is fixed at registration and never changes afterwards.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (a *Account) IsTrainer() bool {
	return a.Role == RoleTrainer
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
