package routes

import (
	controller "tastymeal-backend/controllers"
	"tastymeal-backend/middleware"

	"github.com/gin-gonic/gin"
)

func LedgerRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/ledgers", middleware.RequireAdmin(), controller.GetLedgers())
	incomingRoutes.GET("/ledgers/:ledger_id", middleware.RequireAdmin(), controller.GetLedger())
	incomingRoutes.POST("/ledgers/:ledger_id/settlements", middleware.RequireAdmin(), controller.RecordSettlement())
	incomingRoutes.GET("/customers/:phone/account", middleware.RequireAdmin(), controller.GetCustomerAccount())
}
