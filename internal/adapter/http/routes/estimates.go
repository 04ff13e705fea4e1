package routes

import (
	"estimate_service/internal/adapter/http/handlers"
	"estimate_service/internal/adapter/http/middleware"
	"estimate_service/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates = "/estimates"
)

func addEstimateRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler, sessions interfaces.ISessionStore) {
	estimates := rg.Group(PathEstimates)
	estimates.GET("/ping", estimateHandler.Ping)

	secured := estimates.Group("", middleware.AuthRequired(sessions))
	{
		secured.GET("", estimateHandler.List)
		secured.GET("/years", estimateHandler.Years)
		secured.POST("", estimateHandler.Create)
		secured.POST("/preview", estimateHandler.Preview)
		secured.GET("/:id", estimateHandler.Detail)
		secured.PUT("/:id", estimateHandler.Update)
		secured.DELETE("/:id", estimateHandler.Delete)
		secured.GET("/:id/history", estimateHandler.History)
		secured.GET("/:id/history-details", estimateHandler.HistoryDetails)
		secured.GET("/:id/revisions/:revision_id", estimateHandler.DetailByRevision)
		secured.POST("/:id/business-state", estimateHandler.UpdateBusinessState)
	}
}
