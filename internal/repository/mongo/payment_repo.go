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

const paymentCollectionName = "payments"

// mongoPaymentRepository implements repository.PaymentRepository.
type mongoPaymentRepository struct {
	collection *mongo.Collection
}

// NewMongoPaymentRepository creates a new payment repository.
func NewMongoPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &mongoPaymentRepository{
		collection: db.Collection(paymentCollectionName),
	}
}

// Create inserts a new payment snapshot in status pending.
func (r *mongoPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	if payment.UserID == primitive.NilObjectID || payment.OrderID == "" {
		return primitive.NilObjectID, errors.New("payment requires userId and orderId")
	}

	payment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if payment.Status == "" {
		payment.Status = domain.PaymentPending
	}

	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted payment ID")
	}
	return insertedID, nil
}

// GetByOrderID retrieves a payment by its gateway order id.
func (r *mongoPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.collection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// Finalize records the gateway outcome for a payment.
func (r *mongoPaymentRepository) Finalize(ctx context.Context, id primitive.ObjectID, status domain.PaymentStatus, gatewayPayID string, subscriptionID *primitive.ObjectID) error {
	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	if gatewayPayID != "" {
		set["gatewayPaymentId"] = gatewayPayID
	}
	if subscriptionID != nil {
		set["subscriptionId"] = *subscriptionID
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByUserID retrieves a user's payment history, newest first.
func (r *mongoPaymentRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

// ListAll retrieves every payment, newest first (admin view).
func (r *mongoPaymentRepository) ListAll(ctx context.Context) ([]domain.Payment, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoPaymentRepository) list(ctx context.Context, filter bson.M) ([]domain.Payment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []domain.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// EnsurePaymentIndexes creates necessary indexes for the payments collection.
func EnsurePaymentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
