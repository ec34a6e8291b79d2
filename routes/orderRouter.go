package routes

import (
	controller "tastymeal-backend/controllers"
	"tastymeal-backend/middleware"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/orders", controller.PlaceOrder())
	incomingRoutes.GET("/orders", controller.GetOrders())
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder())
	incomingRoutes.PATCH("/orders/:order_id/status", middleware.RequireAdmin(), controller.UpdateOrderStatus())
}
