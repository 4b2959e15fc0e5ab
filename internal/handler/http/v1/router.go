package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := APIKeyAuthMiddleware(h.cfg, h.logger)

	// Сообщения об инцидентах и голосование
	incidents := api.Group("/incidents")
	{
		incidents.GET("/:id", h.getIncident)
		incidents.POST("", auth, h.submitIncident)
		incidents.POST("/:id/votes", auth, h.castVote)
		incidents.PUT("/:id/hidden", auth, h.setHidden)
	}

	// Слои карты
	api.GET("/heatmap/cells", h.queryHeatCells)
	api.GET("/neighborhoods", h.queryNeighborhoods)
	api.GET("/neighborhoods/geojson", h.neighborhoodsGeoJSON)

	api.POST("/news/reconcile", auth, h.reconcileNews)

	admin := api.Group("/admin", auth)
	{
		admin.POST("/rebuild", h.rebuildAll)
		admin.POST("/rebalance", h.rebalanceColors)
		admin.POST("/neighborhoods", h.importNeighborhoods)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
