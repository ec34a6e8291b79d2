package routes

import (
	controller "tastymeal-backend/controllers"
	"tastymeal-backend/middleware"

	"github.com/gin-gonic/gin"
)

func MenuItemRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/menu-items", controller.GetMenuItems())
	incomingRoutes.GET("/menu-items/:item_id", controller.GetMenuItem())
	incomingRoutes.POST("/menu-items", middleware.RequireAdmin(), controller.CreateMenuItem())
	incomingRoutes.PATCH("/menu-items/:item_id", middleware.RequireAdmin(), controller.UpdateMenuItem())
}
