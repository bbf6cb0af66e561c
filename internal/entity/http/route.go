package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers contractor and team routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, managerMiddleware gin.HandlerFunc) {
	group := g.Group("/entities")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", managerMiddleware, h.Create)
		group.PATCH("/:id", managerMiddleware, h.Update)
	}
}
