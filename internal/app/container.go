package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/court-scheduler/internal/api"
	"github.com/nekogravitycat/court-scheduler/internal/auth"
	"github.com/nekogravitycat/court-scheduler/internal/booking"
	"github.com/nekogravitycat/court-scheduler/internal/court"
	"github.com/nekogravitycat/court-scheduler/internal/entity"
	"github.com/nekogravitycat/court-scheduler/internal/pricing"
	"github.com/nekogravitycat/court-scheduler/internal/refund"
	"github.com/nekogravitycat/court-scheduler/internal/staff"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	FacilityOpen      timegrid.Time
	FacilityClose     timegrid.Time
	SlotMinutes       int
	Rates             pricing.Rates
	RefundNoticeHours float64
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	StaffService   staff.Service
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Init Components
	pinHasher := auth.NewBcryptPINHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Staff Module
	staffRepo := staff.NewPgxRepository(cfg.DBPool)
	staffService := staff.NewService(staffRepo, pinHasher, logger.Named("staff"))

	// Court Module
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo)

	// Contractor / Team Module
	entityRepo := entity.NewPgxRepository(cfg.DBPool)
	entityService := entity.NewService(entityRepo)

	// Booking Module with its pricing and refund collaborators
	noticeHours := cfg.RefundNoticeHours
	if noticeHours <= 0 {
		noticeHours = refund.DefaultNoticeHours
	}
	bookingOpts := booking.DefaultOptions()
	if cfg.SlotMinutes > 0 {
		bookingOpts.Open = cfg.FacilityOpen
		bookingOpts.Close = cfg.FacilityClose
		bookingOpts.SlotMinutes = cfg.SlotMinutes
	}
	rates := cfg.Rates
	if rates.Prime.IsZero() && rates.NonPrime.IsZero() {
		rates = pricing.DefaultRates()
	}
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(
		bookingRepo,
		courtService,
		entityService,
		pricing.NewEngine(rates),
		refund.NewPolicyWithNotice(noticeHours),
		logger.Named("booking"),
		bookingOpts,
	)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         logger.Named("http"),
		StaffService:   staffService,
		CourtService:   courtService,
		EntityService:  entityService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		StaffService:   staffService,
		BookingService: bookingService,
	}
}
