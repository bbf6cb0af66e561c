package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking desk routes and the day schedule.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, managerMiddleware gin.HandlerFunc) {
	g.GET("/schedule", authMiddleware, h.Schedule)

	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.POST("/quote", h.Quote)
		group.POST("/import", managerMiddleware, h.Import)

		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.POST("/:id/check-in", h.CheckIn)
		group.GET("/:id/refund-suggestion", h.RefundSuggestion)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/no-show", h.MarkNoShow)
		group.POST("/:id/complete", h.Complete)
	}
}
