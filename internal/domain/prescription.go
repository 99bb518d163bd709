package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutExercise is one entry of a workout prescription.
type WorkoutExercise struct {
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`
	Reps int    `bson:"reps" json:"reps"`
	Rest string `bson:"rest,omitempty" json:"rest,omitempty"` // e.g. "90s"
}

// Workout is a trainer-authored exercise prescription for a user and goal.
// Create-only in this design; a revised plan is a new document.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	GoalID      primitive.ObjectID `bson:"goalId" json:"goalId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []WorkoutExercise  `bson:"exercises" json:"exercises"`
	Schedule    string             `bson:"schedule,omitempty" json:"schedule,omitempty"` // e.g. "Mon/Wed/Fri"
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Meal is one entry of a nutrition prescription.
type Meal struct {
	Name        string `bson:"name" json:"name"` // e.g. "Breakfast"
	Calories    int    `bson:"calories,omitempty" json:"calories,omitempty"`
	Description string `bson:"description" json:"description"`
}

// Nutrition is a trainer-authored meal plan for a user and goal.
type Nutrition struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	GoalID      primitive.ObjectID `bson:"goalId" json:"goalId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Meals       []Meal             `bson:"meals" json:"meals"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
