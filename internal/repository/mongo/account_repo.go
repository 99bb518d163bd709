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

const accountCollectionName = "accounts"

// mongoAccountRepository implements repository.AccountRepository using MongoDB.
type mongoAccountRepository struct {
	collection *mongo.Collection
}

// NewMongoAccountRepository creates a new instance of mongoAccountRepository.
func NewMongoAccountRepository(db *mongo.Database) repository.AccountRepository {
	return &mongoAccountRepository{
		collection: db.Collection(accountCollectionName),
	}
}

// Create inserts a new account. The unique index on email turns duplicate
// registrations into repository.ErrConflict.
func (r *mongoAccountRepository) Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error) {
	if account.Email == "" || account.PasswordHash == "" || !domain.ValidRole(account.Role) {
		return primitive.NilObjectID, errors.New("account email, password hash, and role are required")
	}

	account.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves an account by its email address.
func (r *mongoAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetByID retrieves an account by its ObjectID.
func (r *mongoAccountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	var account domain.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ListByRole retrieves all accounts carrying the given role.
func (r *mongoAccountRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []domain.Account
	if err = cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CountByRole counts accounts carrying the given role.
func (r *mongoAccountRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role})
}

// EnsureAccountIndexes creates necessary indexes for the accounts collection.
// Call this once during application startup.
func EnsureAccountIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
