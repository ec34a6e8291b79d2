package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTxnRunner runs a callback inside a Mongo session transaction.
// WithTransaction retries on transient errors and aborts on any returned
// error, so no partial writes survive a failed callback.
type MongoTxnRunner struct {
	client *mongo.Client
}

func NewTxnRunner(client *mongo.Client) *MongoTxnRunner {
	return &MongoTxnRunner{client: client}
}

func (r *MongoTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
