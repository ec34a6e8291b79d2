package repository

import (
	"context"
	"fmt"
	"time"

	"tastymeal-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository implements services.OrderStore. Order numbers come from a
// per-day counter document incremented with findOneAndUpdate, which replaces
// the old count-then-format pattern and its duplicate-number race.
type OrderRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewOrderRepository(collection, counters *mongo.Collection) *OrderRepository {
	return &OrderRepository{collection: collection, counters: counters}
}

func (r *OrderRepository) NextOrderNumber(ctx context.Context, day time.Time) (string, error) {
	dayKey := day.Format("060102")

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"counter_id": "order-" + dayKey},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TM%s%03d", dayKey, counter.Seq), nil
}

func (r *OrderRepository) InsertOrder(ctx context.Context, order *models.Order) error {
	_, err := r.collection.InsertOne(ctx, order)
	return err
}
