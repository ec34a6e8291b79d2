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

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")
var counterCollection *mongo.Collection = database.OpenCollection(database.Client, "counter")

var orderService = services.NewOrderService(
	repository.NewMenuRepository(menuItemCollection),
	repository.NewOrderRepository(orderCollection, counterCollection),
	ledgerService,
	repository.NewTxnRunner(database.Client),
)

var orderStatuses = map[string]bool{
	services.StatusPending:   true,
	services.StatusConfirmed: true,
	services.StatusPreparing: true,
	services.StatusReady:     true,
	services.StatusCompleted: true,
	services.StatusCancelled: true,
	services.StatusPaid:      true,
}

func PlaceOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req services.PlaceOrderRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := orderService.PlaceOrder(ctx, req, callerFromContext(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		notifyNewOrder(order)
		c.JSON(http.StatusOK, order)
	}
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if phone := c.Query("customer_phone"); phone != "" {
			filter["customer_phone"] = phone
		}

		result, err := orderCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		var allOrders []bson.M
		if err := result.All(ctx, &allOrders); err != nil {
			log.Println("error decoding orders:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, allOrders)
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		orderId := c.Param("order_id")
		var order models.Order

		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// UpdateOrderStatus moves an order to any of the enumerated statuses in one
// admin step. Transitions are intentionally unvalidated; "ready" stamps the
// actual ready time.
func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		orderId := c.Param("order_id")

		var body struct {
			Status string `json:"status"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !orderStatuses[body.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
			return
		}

		updateObj := bson.D{
			{Key: "status", Value: body.Status},
			{Key: "updated_at", Value: time.Now()},
		}
		if body.Status == services.StatusReady {
			updateObj = append(updateObj, bson.E{Key: "actual_ready_time", Value: time.Now()})
		}

		result, err := orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId},
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order status update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		var order models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order); err == nil {
			notifyOrderStatus(&order)
		}
		c.JSON(http.StatusOK, result)
	}
}
