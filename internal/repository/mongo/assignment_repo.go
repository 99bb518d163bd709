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

const assignmentCollectionName = "trainer_assignments"

// mongoAssignmentRepository implements repository.AssignmentRepository.
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new assignment repository backed by MongoDB.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{
		collection: db.Collection(assignmentCollectionName),
	}
}

// Create inserts a new assignment in status pending. The partial unique
// index on (userId, status in {pending, approved}) rejects a second
// concurrent blocking assignment; that surfaces as ErrConflict.
func (r *mongoAssignmentRepository) Create(ctx context.Context, assignment *domain.TrainerAssignment) (primitive.ObjectID, error) {
	if assignment.UserID == primitive.NilObjectID ||
		assignment.TrainerID == primitive.NilObjectID ||
		assignment.GoalID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("assignment requires userId, trainerId and goalId")
	}

	assignment.ID = primitive.NewObjectID()
	assignment.Status = domain.AssignmentPending
	assignment.DecidedAt = nil
	now := time.Now().UTC()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted assignment ID")
	}
	return insertedID, nil
}

// GetByID retrieves an assignment by its ObjectID.
func (r *mongoAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerAssignment, error) {
	var assignment domain.TrainerAssignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// ListByTrainerID retrieves every assignment addressed to a trainer,
// regardless of status, newest first.
func (r *mongoAssignmentRepository) ListByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerAssignment, error) {
	filter := bson.M{"trainerId": trainerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []domain.TrainerAssignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListByTrainerIDAndStatus retrieves a trainer's assignments in one status.
func (r *mongoAssignmentRepository) ListByTrainerIDAndStatus(ctx context.Context, trainerID primitive.ObjectID, status domain.AssignmentStatus) ([]domain.TrainerAssignment, error) {
	filter := bson.M{"trainerId": trainerID, "status": status}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []domain.TrainerAssignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// GetByUserIDAndStatus retrieves a user's assignment in the given status.
func (r *mongoAssignmentRepository) GetByUserIDAndStatus(ctx context.Context, userID primitive.ObjectID, status domain.AssignmentStatus) (*domain.TrainerAssignment, error) {
	var assignment domain.TrainerAssignment
	filter := bson.M{"userId": userID, "status": status}
	err := r.collection.FindOne(ctx, filter).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// Transition atomically moves an assignment from one status to another,
// scoped to the owning trainer. The compare-and-set on status prevents
// re-deciding an already-decided assignment even under concurrent requests.
func (r *mongoAssignmentRepository) Transition(ctx context.Context, id, trainerID primitive.ObjectID, from, to domain.AssignmentStatus, decidedAt time.Time) (*domain.TrainerAssignment, error) {
	filter := bson.M{"_id": id, "trainerId": trainerID, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":    to,
			"decidedAt": decidedAt,
			"updatedAt": time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.TrainerAssignment
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Distinguish "not yours / missing" from "already decided".
	existing, getErr := r.collection.CountDocuments(ctx, bson.M{"_id": id, "trainerId": trainerID})
	if getErr != nil {
		return nil, getErr
	}
	if existing == 0 {
		return nil, repository.ErrNotFound
	}
	return nil, repository.ErrConflict
}

// CountByStatus counts assignments in the given status.
func (r *mongoAssignmentRepository) CountByStatus(ctx context.Context, status domain.AssignmentStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// EnsureAssignmentIndexes creates necessary indexes for the
// trainer_assignments collection. The partial unique index carries the
// no-double-booking invariant: a user holds at most one pending or approved
// assignment at a time. Requires MongoDB 6.0+ for $in in the partial filter.
func EnsureAssignmentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": domain.BlockingStatuses},
				}),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
