package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"tastymeal-backend/database"
	"tastymeal-backend/models"
	"tastymeal-backend/repository"
	"tastymeal-backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ledgerCollection *mongo.Collection = database.OpenCollection(database.Client, "accountLedger")

var ledgerService = services.NewLedgerService(
	repository.NewLedgerRepository(ledgerCollection),
	repository.NewTxnRunner(database.Client),
)

func RecordSettlement() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req services.SettlementRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.LedgerID = c.Param("ledger_id")

		ledger, err := ledgerService.RecordSettlement(ctx, req, callerFromContext(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, ledger)
	}
}

func GetLedgers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := bson.M{}
		if accountType := c.Query("account_type"); accountType != "" {
			filter["account_type"] = accountType
		}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if phone := c.Query("customer_phone"); phone != "" {
			filter["customer_phone"] = phone
		}

		result, err := ledgerCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"updated_at": -1}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing ledgers"})
			return
		}
		var allLedgers []bson.M
		if err := result.All(ctx, &allLedgers); err != nil {
			log.Println("error decoding ledgers:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing ledgers"})
			return
		}
		c.JSON(http.StatusOK, allLedgers)
	}
}

func GetLedger() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		ledgerId := c.Param("ledger_id")
		var ledger models.AccountLedger

		err := ledgerCollection.FindOne(ctx, bson.M{"ledger_id": ledgerId}).Decode(&ledger)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "ledger not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the ledger"})
			return
		}
		c.JSON(http.StatusOK, ledger)
	}
}

// GetCustomerAccount aggregates a customer's ledgers with their orders for
// the profile view: ledgers joined against the order collection by phone.
func GetCustomerAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		phone := c.Param("phone")

		matchStage := bson.D{{Key: "$match", Value: bson.D{
			{Key: "account_type", Value: "customer"},
			{Key: "customer_phone", Value: phone},
		}}}
		lookupOrdersStage := bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "order"},
			{Key: "localField", Value: "customer_phone"},
			{Key: "foreignField", Value: "customer_phone"},
			{Key: "as", Value: "orders"},
		}}}
		sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}}
		projectStage := bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "ledger_id", Value: 1},
			{Key: "customer_phone", Value: 1},
			{Key: "customer_name", Value: 1},
			{Key: "total_orders_amount", Value: 1},
			{Key: "total_payments_amount", Value: 1},
			{Key: "balance", Value: 1},
			{Key: "status", Value: 1},
			{Key: "settlements", Value: 1},
			{Key: "last_order_at", Value: 1},
			{Key: "last_settlement_at", Value: 1},
			{Key: "order_count", Value: bson.D{{Key: "$size", Value: "$orders"}}},
			{Key: "orders", Value: bson.D{{Key: "$slice", Value: bson.A{"$orders", 20}}}},
		}}}

		cursor, err := ledgerCollection.Aggregate(ctx, mongo.Pipeline{
			matchStage,
			lookupOrdersStage,
			sortStage,
			projectStage,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while aggregating the customer account"})
			return
		}
		defer cursor.Close(ctx)

		var account []bson.M
		if err := cursor.All(ctx, &account); err != nil {
			log.Println("error decoding customer account:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while aggregating the customer account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"customer_phone": phone,
			"ledgers":        account,
		})
	}
}
