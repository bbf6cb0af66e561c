package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers staff roster, session and management routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, managerMiddleware gin.HandlerFunc) {
	// Public Routes
	g.GET("/staff/roster", h.Roster)
	g.POST("/staff/session", h.SignIn)

	// Authenticated Routes
	g.GET("/me", authMiddleware, h.Me)

	// Manager Routes
	group := g.Group("/staff")
	group.Use(authMiddleware, managerMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
	}
}
