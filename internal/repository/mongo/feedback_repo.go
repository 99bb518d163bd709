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

const feedbackCollectionName = "feedback"

// mongoFeedbackRepository implements repository.FeedbackRepository.
type mongoFeedbackRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedbackRepository creates a new feedback repository.
func NewMongoFeedbackRepository(db *mongo.Database) repository.FeedbackRepository {
	return &mongoFeedbackRepository{
		collection: db.Collection(feedbackCollectionName),
	}
}

// Create inserts a new feedback entry.
func (r *mongoFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) (primitive.ObjectID, error) {
	if feedback.UserID == primitive.NilObjectID || feedback.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("feedback requires userId and trainerId")
	}
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return primitive.NilObjectID, errors.New("feedback rating must be between 1 and 5")
	}

	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted feedback ID")
	}
	return insertedID, nil
}

// ListByTrainerID retrieves feedback left for a trainer, newest first.
func (r *mongoFeedbackRepository) ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Feedback, error) {
	return r.list(ctx, bson.M{"trainerId": trainerID})
}

// ListAll retrieves every feedback entry, newest first (admin view).
func (r *mongoFeedbackRepository) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoFeedbackRepository) list(ctx context.Context, filter bson.M) ([]domain.Feedback, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.Feedback
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureFeedbackIndexes creates necessary indexes for the feedback collection.
func EnsureFeedbackIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
