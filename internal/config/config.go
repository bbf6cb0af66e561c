package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/court-scheduler/internal/pricing"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	LogDir   string
	LogDebug bool

	// Facility day and slot lattice used by the schedule grid.
	FacilityOpen  timegrid.Time
	FacilityClose timegrid.Time
	SlotMinutes   int

	Rates             pricing.Rates
	RefundNoticeHours float64

	// First manager account, created only while the staff table is empty.
	BootstrapManagerName string
	BootstrapManagerPIN  string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "12h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Logging: optional rotated file directory, debug switches encoder and level
	cfg.LogDir = getEnv("LOG_DIR", "")
	cfg.LogDebug, err = getEnvAsBool("LOG_DEBUG", false)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_DEBUG: %w", err)
	}

	if err := loadFacility(cfg); err != nil {
		return nil, err
	}

	cfg.Rates, err = loadRates(pricing.DefaultRates())
	if err != nil {
		return nil, err
	}

	notice, err := getEnvAsInt("REFUND_NOTICE_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid REFUND_NOTICE_HOURS: %w", err)
	}
	cfg.RefundNoticeHours = float64(notice)

	cfg.BootstrapManagerName = getEnv("BOOTSTRAP_MANAGER_NAME", "")
	cfg.BootstrapManagerPIN = getEnv("BOOTSTRAP_MANAGER_PIN", "")

	return cfg, nil
}

func loadFacility(cfg *Config) error {
	var err error
	cfg.FacilityOpen, err = timegrid.ParseTime(getEnv("FACILITY_OPEN", "06:00"))
	if err != nil {
		return fmt.Errorf("invalid FACILITY_OPEN: %w", err)
	}
	cfg.FacilityClose, err = timegrid.ParseTime(getEnv("FACILITY_CLOSE", "22:00"))
	if err != nil {
		return fmt.Errorf("invalid FACILITY_CLOSE: %w", err)
	}
	if !cfg.FacilityOpen.Before(cfg.FacilityClose) {
		return fmt.Errorf("FACILITY_OPEN must be before FACILITY_CLOSE")
	}

	cfg.SlotMinutes, err = getEnvAsInt("SLOT_MINUTES", timegrid.DefaultStepMinutes)
	if err != nil {
		return fmt.Errorf("invalid SLOT_MINUTES: %w", err)
	}
	if cfg.SlotMinutes <= 0 {
		return fmt.Errorf("SLOT_MINUTES must be positive")
	}
	return nil
}

// loadRates applies RATE_* overrides on top of the given rate card.
func loadRates(rates pricing.Rates) (pricing.Rates, error) {
	overrides := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"RATE_PRIME", &rates.Prime},
		{"RATE_NONPRIME", &rates.NonPrime},
		{"RATE_GROUP_50", &rates.Group50},
		{"RATE_GROUP_10", &rates.Group10},
		{"RATE_TEAM_5", &rates.Team5},
		{"RATE_TEAM_3", &rates.Team3},
		{"RATE_BALL_MACHINE", &rates.BallMachine},
	}
	for _, o := range overrides {
		v := getEnv(o.key, "")
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return rates, fmt.Errorf("invalid %s: %w", o.key, err)
		}
		if d.IsNegative() {
			return rates, fmt.Errorf("invalid %s: must not be negative", o.key)
		}
		*o.dst = d
	}
	return rates, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		// Return 0 and a wrapped error to provide context
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsBool retrieves an environment variable as a boolean (strconv.ParseBool syntax).
func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}

	return val, nil
}
