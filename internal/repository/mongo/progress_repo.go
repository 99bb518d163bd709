package mongo

import (
	"context"
	"errors"
	"time"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "progress_entries"

// mongoProgressRepository implements repository.ProgressRepository.
// The collection is append-only: no update or delete methods exist.
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new progress repository.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Create appends a new progress entry.
func (r *mongoProgressRepository) Create(ctx context.Context, entry *domain.Progress) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.GoalID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress entry requires userId and goalId")
	}

	entry.ID = primitive.NewObjectID()
	entry.RecordedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted progress ID")
	}
	return insertedID, nil
}

// ListByGoalID retrieves the history for a goal, newest first.
func (r *mongoProgressRepository) ListByGoalID(ctx context.Context, goalID primitive.ObjectID) ([]domain.Progress, error) {
	return r.list(ctx, bson.M{"goalId": goalID})
}

// ListByUserID retrieves a user's full history, newest first.
func (r *mongoProgressRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *mongoProgressRepository) list(ctx context.Context, filter bson.M) ([]domain.Progress, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.Progress
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureProgressIndexes creates necessary indexes for the progress_entries
// collection.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "goalId", Value: 1}, {Key: "recordedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "recordedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
