package repository

import (
	"context"
	"fmt"
	"time"

	"tastymeal-backend/models"
	"tastymeal-backend/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MenuRepository implements services.MenuStore on the menuItem collection.
type MenuRepository struct {
	collection *mongo.Collection
}

func NewMenuRepository(collection *mongo.Collection) *MenuRepository {
	return &MenuRepository{collection: collection}
}

func (r *MenuRepository) FindItemByID(ctx context.Context, itemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.collection.FindOne(ctx, bson.M{"item_id": itemID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: %s", services.ErrItemNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DecrementStock filters on stock >= qty so the decrement can never push
// stock negative, even under concurrent orders for the same item.
func (r *MenuRepository) DecrementStock(ctx context.Context, itemID string, qty int64) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"item_id": itemID, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", services.ErrInsufficientStock, itemID)
	}
	return nil
}
