package router

import (
	"github.com/gin-gonic/gin"

	"github.com/navid-fn/feeboard/internal/handler"
)

func registerFeeRoutes(router *gin.RouterGroup, feeHandler *handler.FeeHandler) {
	fees := router.Group("/fees")
	{
		fees.GET("", feeHandler.GetFees)
		fees.GET("/notionals", feeHandler.GetNotionals)
		fees.GET("/count", feeHandler.GetCount)
		fees.GET("/export.csv", feeHandler.ExportCSV)
		fees.GET("/ws", feeHandler.Socket)
	}
}
