package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")
	{
		api.GET("/health", health)

		api.POST("/sims", h.createSim)
		api.GET("/sims/:id", h.getSim)
		api.POST("/sims/:id/draw", h.drawSim)
		api.DELETE("/sims/:id", h.deleteSim)
		api.GET("/sims/:id/hand.png", h.handImage)
		api.POST("/probability", h.probability)

		api.POST("/deck/parse", h.parseDeck)
		api.POST("/deck/export", exportDeck)
		api.POST("/filter", h.filter)
		api.GET("/qr", qrHandler)
	}
}
