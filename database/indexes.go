package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the ledger and order invariants rely on.
// Safe to call on every startup; CreateMany is a no-op for existing indexes.
func EnsureIndexes(ctx context.Context, client *mongo.Client) error {
	ledgerCollection := OpenCollection(client, "accountLedger")
	_, err := ledgerCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// at most one open ledger per customer phone
			Keys: bson.D{{Key: "customer_phone", Value: 1}},
			Options: options.Index().
				SetName("unique_open_customer_ledger").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"account_type": "customer", "status": "open"}),
		},
		{
			// one employee ledger per identity and calendar month
			Keys: bson.D{
				{Key: "employee_key", Value: 1},
				{Key: "period_year", Value: 1},
				{Key: "period_month", Value: 1},
			},
			Options: options.Index().
				SetName("unique_employee_month_ledger").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"account_type": "employee"}),
		},
	})
	if err != nil {
		return err
	}

	orderCollection := OpenCollection(client, "order")
	_, err = orderCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_number", Value: 1}},
		Options: options.Index().SetName("unique_order_number").SetUnique(true),
	})
	if err != nil {
		return err
	}

	userCollection := OpenCollection(client, "user")
	_, err = userCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetName("unique_user_phone").SetUnique(true),
	})
	return err
}
