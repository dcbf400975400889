package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// SOS incident lifecycle
	sos := api.Group("/sos")
	{
		sos.POST("", h.createSOS)
		sos.GET("/:id", h.getSOS)
		sos.POST("/:id/cancel", h.cancelSOS)
		sos.POST("/:id/complete", h.completeSOS)
	}

	// Hotspot snapshot
	hotspots := api.Group("/hotspots")
	{
		hotspots.GET("", h.getHotspots)
		hotspots.POST("/refresh", h.refreshHotspots)
	}

	// Geofence check and stats
	api.POST("/location/check", h.checkLocation)
	api.GET("/stats", h.getStats)
}

// RegisterPublicRoutes registers the routes that bypass API key auth: the
// realtime session endpoint and the health check.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/ws", h.serveWS)
	api.GET("/system/health", h.healthCheck)
}
