package routes

import (
	controller "tastymeal-backend/controllers"
	"tastymeal-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/users/signup", controller.SignUp())
	incomingRoutes.POST("/users/login", controller.Login())
	incomingRoutes.GET("/ws", controller.HandleWebSocket())
	incomingRoutes.GET("/users", middleware.Authentication(), middleware.RequireAdmin(), controller.GetUsers())
	incomingRoutes.GET("/users/:user_id", middleware.Authentication(), controller.GetUser())
}
