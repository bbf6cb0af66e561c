package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/court-scheduler/internal/app"
	"github.com/nekogravitycat/court-scheduler/internal/config"
	"github.com/nekogravitycat/court-scheduler/internal/db"
	"github.com/nekogravitycat/court-scheduler/internal/logger"
	"github.com/nekogravitycat/court-scheduler/internal/staff"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logger; response.Error and other package-level logging go through zap.L()
	zl, err := logger.New(logger.Options{Dir: cfg.LogDir, Debug: cfg.LogDebug})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		zl.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := db.ApplySchema(ctx, pool); err != nil {
		zl.Fatal("failed to prepare database", zap.Error(err))
	}

	container := app.NewContainer(app.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		DBPool:            pool,
		Logger:            zl,
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTAccessTokenTTL,
		BcryptCost:        cfg.BcryptCost,
		FacilityOpen:      cfg.FacilityOpen,
		FacilityClose:     cfg.FacilityClose,
		SlotMinutes:       cfg.SlotMinutes,
		Rates:             cfg.Rates,
		RefundNoticeHours: cfg.RefundNoticeHours,
	})

	if err := bootstrapManager(ctx, container.StaffService, cfg); err != nil {
		zl.Fatal("failed to bootstrap manager", zap.Error(err))
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr), zap.Bool("production", cfg.IsProduction))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zl.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Warn("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}

// bootstrapManager creates the first manager when the roster is empty and
// BOOTSTRAP_MANAGER_NAME/PIN are set.
func bootstrapManager(ctx context.Context, staffService staff.Service, cfg *config.Config) error {
	if cfg.BootstrapManagerName == "" || cfg.BootstrapManagerPIN == "" {
		return nil
	}
	existing, err := staffService.List(ctx, false)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	m, err := staffService.Create(ctx, staff.CreateRequest{
		Name: cfg.BootstrapManagerName,
		PIN:  cfg.BootstrapManagerPIN,
		Role: string(staff.RoleManager),
	})
	if err != nil {
		return err
	}
	zap.L().Info("bootstrap manager created", zap.String("staff_id", m.ID), zap.String("name", m.Name))
	return nil
}
