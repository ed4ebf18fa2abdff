package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/miniorder/order-system/internal/core/domain"
)

const ordersCollection = "orders"

const ordersSequence = "orders"

type OrderRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{db: db, coll: db.Collection(ordersCollection)}
}

// Create inserts a new order document under a freshly allocated numeric id.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, ordersSequence)
	if err != nil {
		return nil, err
	}

	created := *order
	created.ID = id
	if _, err := r.coll.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return &created, nil
}

// FindByID retrieves an order scoped to its owner. The owner filter is part
// of the query, so a foreign order is indistinguishable from a missing one.
func (r *OrderRepository) FindByID(ctx context.Context, id, ownerID int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var order domain.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// ListByOwner returns the owner's orders newest first, optionally filtered
// by status.
func (r *OrderRepository) ListByOwner(ctx context.Context, ownerID int64, status domain.OrderStatus) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": ownerID}
	if status != "" {
		filter["status"] = string(status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus applies a single conditional status transition. The filter
// carries the expected prior status, so the write is an atomic
// read-modify-write: a concurrent transition on the same order makes the
// precondition fail (matched count 0) instead of double-applying.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, ownerID int64, from, to domain.OrderStatus, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "user_id": ownerID, "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "updated_at": at.UTC()}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// AdvanceAll transitions every order in from to to with one multi-document
// update. Each document's match is conditional on the prior status, so
// orders moved concurrently (e.g. cancelled mid-sweep) are skipped, never
// overwritten.
func (r *OrderRepository) AdvanceAll(ctx context.Context, from, to domain.OrderStatus, olderThan time.Duration, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"status": string(from)}
	if olderThan > 0 {
		filter["updated_at"] = bson.M{"$lte": at.UTC().Add(-olderThan)}
	}
	update := bson.M{"$set": bson.M{"status": string(to), "updated_at": at.UTC()}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("advance orders %s->%s: %w", from, to, err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the secondary indexes used by owner-scoped listing
// and the status sweep.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
