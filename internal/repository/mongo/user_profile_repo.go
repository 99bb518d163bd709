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

const userProfileCollectionName = "user_profiles"

// mongoUserProfileRepository implements repository.UserProfileRepository.
type mongoUserProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoUserProfileRepository creates a new user profile repository.
func NewMongoUserProfileRepository(db *mongo.Database) repository.UserProfileRepository {
	return &mongoUserProfileRepository{
		collection: db.Collection(userProfileCollectionName),
	}
}

// Upsert creates the profile for an account or replaces its editable fields.
// The image key is managed separately via SetImageKey and survives upserts.
func (r *mongoUserProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if profile.AccountID == primitive.NilObjectID {
		return nil, errors.New("user profile requires accountId")
	}

	now := time.Now().UTC()
	filter := bson.M{"accountId": profile.AccountID}
	update := bson.M{
		"$set": bson.M{
			"age":          profile.Age,
			"gender":       profile.Gender,
			"heightCm":     profile.HeightCm,
			"weightKg":     profile.WeightKg,
			"fitnessLevel": profile.FitnessLevel,
			"phone":        profile.Phone,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"accountId": profile.AccountID,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved domain.UserProfile
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetByAccountID retrieves the profile for an account.
func (r *mongoUserProfileRepository) GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"accountId": accountID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// SetImageKey records the object storage key of the profile image.
func (r *mongoUserProfileRepository) SetImageKey(ctx context.Context, accountID primitive.ObjectID, objectKey string) error {
	update := bson.M{
		"$set": bson.M{
			"imageObjectKey": objectKey,
			"updatedAt":      time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"accountId": accountID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListAll retrieves every user profile (admin aggregation fan-out).
func (r *mongoUserProfileRepository) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []domain.UserProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// EnsureUserProfileIndexes creates necessary indexes for the user_profiles
// collection.
func EnsureUserProfileIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// One profile per user account
			Keys:    bson.D{{Key: "accountId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
