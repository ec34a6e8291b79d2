package repository

import (
	"context"
	"fmt"
	"time"

	"tastymeal-backend/models"
	"tastymeal-backend/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LedgerRepository implements services.LedgerStore on the accountLedger
// collection. The upsert filters line up with the partial unique indexes in
// database.EnsureIndexes, so concurrent writers collapse onto one row per key.
type LedgerRepository struct {
	collection *mongo.Collection
}

func NewLedgerRepository(collection *mongo.Collection) *LedgerRepository {
	return &LedgerRepository{collection: collection}
}

func (r *LedgerRepository) ApplyOrder(ctx context.Context, key services.LedgerKey, order *models.Order) (*models.AccountLedger, error) {
	now := time.Now()
	id := primitive.NewObjectID()

	set := bson.M{
		"last_order_at": order.Created_at,
		"updated_at":    now,
	}
	setOnInsert := bson.M{
		"_id":                   id,
		"ledger_id":             id.Hex(),
		"total_payments_amount": float64(0),
		"settlements":           []models.Settlement{},
		"created_at":            now,
	}

	var filter bson.M
	switch key.AccountType {
	case services.AccountTypeCustomer:
		// status is part of the filter: a settled ledger stays inert and the
		// upsert seeds a fresh open one instead.
		filter = bson.M{
			"account_type":   services.AccountTypeCustomer,
			"customer_phone": key.CustomerPhone,
			"status":         services.LedgerStatusOpen,
		}
		set["customer_name"] = key.CustomerName
		if key.CustomerID != nil {
			set["customer_id"] = key.CustomerID
		}
	case services.AccountTypeEmployee:
		filter = bson.M{
			"account_type": services.AccountTypeEmployee,
			"employee_key": key.EmployeeKey,
			"period_year":  key.PeriodYear,
			"period_month": key.PeriodMonth,
		}
		// new charges reopen a fully-settled employee month
		set["status"] = services.LedgerStatusOpen
		set["employee_name"] = key.EmployeeName
		if key.EmployeeID != nil {
			set["employee_id"] = key.EmployeeID
		}
		if key.EmployeePhone != nil {
			set["employee_phone"] = key.EmployeePhone
		}
	default:
		return nil, fmt.Errorf("unknown ledger account type %q", key.AccountType)
	}

	var ledger models.AccountLedger
	err := r.collection.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{
			"$inc": bson.M{
				"total_orders_amount": order.Total,
				"balance":             order.Total,
			},
			"$set":         set,
			"$setOnInsert": setOnInsert,
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&ledger)
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (r *LedgerRepository) FindByLedgerID(ctx context.Context, ledgerID string) (*models.AccountLedger, error) {
	var ledger models.AccountLedger
	err := r.collection.FindOne(ctx, bson.M{"ledger_id": ledgerID}).Decode(&ledger)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: %s", services.ErrLedgerNotFound, ledgerID)
	}
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (r *LedgerRepository) ApplySettlement(ctx context.Context, ledgerID string, settlement models.Settlement, closing bool) (*models.AccountLedger, error) {
	set := bson.M{
		"last_settlement_at": settlement.Recorded_at,
		"updated_at":         time.Now(),
	}
	if closing {
		set["status"] = services.LedgerStatusSettled
	}

	var ledger models.AccountLedger
	err := r.collection.FindOneAndUpdate(
		ctx,
		// the balance guard keeps a concurrent settlement from overdrawing
		bson.M{"ledger_id": ledgerID, "balance": bson.M{"$gte": settlement.Amount}},
		bson.M{
			"$inc": bson.M{
				"total_payments_amount": settlement.Amount,
				"balance":               -settlement.Amount,
			},
			"$push": bson.M{"settlements": settlement},
			"$set":  set,
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ledger)
	if err == mongo.ErrNoDocuments {
		return nil, services.ErrAmountExceedsBalance
	}
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}
