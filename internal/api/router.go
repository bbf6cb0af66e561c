package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/court-scheduler/internal/auth"
	"github.com/nekogravitycat/court-scheduler/internal/booking"
	bookingHttp "github.com/nekogravitycat/court-scheduler/internal/booking/http"
	"github.com/nekogravitycat/court-scheduler/internal/court"
	courtHttp "github.com/nekogravitycat/court-scheduler/internal/court/http"
	"github.com/nekogravitycat/court-scheduler/internal/entity"
	entityHttp "github.com/nekogravitycat/court-scheduler/internal/entity/http"
	"github.com/nekogravitycat/court-scheduler/internal/staff"
	staffHttp "github.com/nekogravitycat/court-scheduler/internal/staff/http"
)

// Config holds the services and settings the router is assembled from.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger

	StaffService   staff.Service
	CourtService   court.Service
	EntityService  entity.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: one zap line per request.
	// - Recover: captures panics and returns a 500 error.
	r.Use(RequestLogger(logger), Recover(logger))

	// Configure CORS (Cross-Origin Resource Sharing).
	// With no origins configured the API is same-origin only.
	if origins := allowedOrigins(cfg.IsProduction, cfg.ProdOrigins); len(origins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = origins
		config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
		r.Use(cors.New(config))
	}

	// authMiddleware: Validates if the request contains a valid staff session token.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// managerMiddleware: Further checks that the signed-in staff member is a manager.
	managerMiddleware := RequireManager(cfg.StaffService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	staffHandler := staffHttp.NewHandler(cfg.StaffService, cfg.JWTManager)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	entityHandler := entityHttp.NewHandler(cfg.EntityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		staffHttp.RegisterRoutes(v1, staffHandler, authMiddleware, managerMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware, managerMiddleware)
		entityHttp.RegisterRoutes(v1, entityHandler, authMiddleware, managerMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, managerMiddleware)
	}

	return r
}

// allowedOrigins returns PROD_ORIGINS in production and local dev servers otherwise.
func allowedOrigins(isProduction bool, prodOrigins string) []string {
	if !isProduction {
		return []string{
			"http://localhost:3000", // Front desk UI
			"http://localhost:8081", // Swagger
		}
	}

	var origins []string
	for _, o := range strings.Split(prodOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
