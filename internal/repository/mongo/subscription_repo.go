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

const subscriptionCollectionName = "subscriptions"

// mongoSubscriptionRepository implements repository.SubscriptionRepository.
type mongoSubscriptionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriptionRepository creates a new subscription repository.
func NewMongoSubscriptionRepository(db *mongo.Database) repository.SubscriptionRepository {
	return &mongoSubscriptionRepository{
		collection: db.Collection(subscriptionCollectionName),
	}
}

// Create inserts a new subscription. The partial unique index on
// (userId, status=active) rejects a concurrent second active subscription
// for the same user; that duplicate-key error surfaces as ErrConflict.
func (r *mongoSubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) (primitive.ObjectID, error) {
	if sub.UserID == primitive.NilObjectID || sub.PlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("subscription requires userId and planId")
	}

	sub.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if sub.Status == "" {
		sub.Status = domain.SubscriptionActive
	}
	if sub.PaymentStatus == "" {
		sub.PaymentStatus = domain.PaymentStatePending
	}

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted subscription ID")
	}
	return insertedID, nil
}

// GetByID retrieves a subscription by its ObjectID.
func (r *mongoSubscriptionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// GetActiveByUserID retrieves the single status=active subscription of a
// user. Callers must still derive validity from the date window.
func (r *mongoSubscriptionRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Subscription, error) {
	var sub domain.Subscription
	filter := bson.M{"userId": userID, "status": domain.SubscriptionActive}
	err := r.collection.FindOne(ctx, filter).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// ListByStatus retrieves all subscriptions in the given ledger status.
func (r *mongoSubscriptionRepository) ListByStatus(ctx context.Context, status domain.SubscriptionStatus) ([]domain.Subscription, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []domain.Subscription
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// UpdateStatus moves a subscription to a new ledger status.
func (r *mongoSubscriptionRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.SubscriptionStatus) error {
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

// SetPaymentState records whether the charge behind the subscription settled.
func (r *mongoSubscriptionRepository) SetPaymentState(ctx context.Context, id primitive.ObjectID, state domain.PaymentState) error {
	update := bson.M{
		"$set": bson.M{
			"paymentStatus": state,
			"updatedAt":     time.Now().UTC(),
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

// ExistsNonCancelledByPlanID reports whether any active or expired
// subscription still references the plan.
func (r *mongoSubscriptionRepository) ExistsNonCancelledByPlanID(ctx context.Context, planID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"planId": planID,
		"status": bson.M{"$ne": domain.SubscriptionCancelled},
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureSubscriptionIndexes creates necessary indexes for the subscriptions
// collection. The partial unique index carries the one-active-subscription-
// per-user invariant so concurrent purchases cannot both insert.
func EnsureSubscriptionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": domain.SubscriptionActive}),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "endDate", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
