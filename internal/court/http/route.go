package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, managerMiddleware gin.HandlerFunc) {
	group := g.Group("/courts")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)                            // Courts in display order
		group.GET("/:id", h.Get)                         // Court details
		group.PATCH("/:id", managerMiddleware, h.Update) // Rename, reorder, change status
	}
}
