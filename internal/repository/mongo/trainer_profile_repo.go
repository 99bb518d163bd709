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

const trainerProfileCollectionName = "trainer_profiles"

// mongoTrainerProfileRepository implements repository.TrainerProfileRepository.
type mongoTrainerProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainerProfileRepository creates a new trainer profile repository.
func NewMongoTrainerProfileRepository(db *mongo.Database) repository.TrainerProfileRepository {
	return &mongoTrainerProfileRepository{
		collection: db.Collection(trainerProfileCollectionName),
	}
}

// Create inserts a new trainer profile. New profiles always start in status
// "new" regardless of what the caller set.
func (r *mongoTrainerProfileRepository) Create(ctx context.Context, profile *domain.TrainerProfile) (primitive.ObjectID, error) {
	if profile.AccountID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("trainer profile requires accountId")
	}

	profile.ID = primitive.NewObjectID()
	profile.Status = domain.TrainerStatusNew
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted trainer profile ID")
	}
	return insertedID, nil
}

// GetByID retrieves a trainer profile by its ObjectID.
func (r *mongoTrainerProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
	var profile domain.TrainerProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetByAccountID retrieves the profile linked to a trainer account.
func (r *mongoTrainerProfileRepository) GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.TrainerProfile, error) {
	var profile domain.TrainerProfile
	err := r.collection.FindOne(ctx, bson.M{"accountId": accountID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// List retrieves trainer profiles, optionally filtered by status.
func (r *mongoTrainerProfileRepository) List(ctx context.Context, status domain.TrainerStatus) ([]domain.TrainerProfile, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []domain.TrainerProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateStatus transitions the admin-controlled activation status.
func (r *mongoTrainerProfileRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.TrainerStatus) error {
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByStatus counts trainer profiles in the given status.
func (r *mongoTrainerProfileRepository) CountByStatus(ctx context.Context, status domain.TrainerStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// EnsureTrainerProfileIndexes creates necessary indexes for the
// trainer_profiles collection.
func EnsureTrainerProfileIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// One profile per trainer account
			Keys:    bson.D{{Key: "accountId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
