package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/court_scheduler_test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 12*time.Hour, cfg.JWTAccessTokenTTL)
	assert.Equal(t, timegrid.NewTime(6, 0), cfg.FacilityOpen)
	assert.Equal(t, timegrid.NewTime(22, 0), cfg.FacilityClose)
	assert.Equal(t, 30, cfg.SlotMinutes)
	assert.Equal(t, 24.0, cfg.RefundNoticeHours)
	assert.True(t, decimal.RequireFromString("12").Equal(cfg.Rates.Prime))
	assert.True(t, decimal.RequireFromString("10").Equal(cfg.Rates.NonPrime))
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_DEBUG", "true")
	t.Setenv("FACILITY_OPEN", "7:00")
	t.Setenv("SLOT_MINUTES", "15")
	t.Setenv("RATE_PRIME", "14.50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.True(t, cfg.LogDebug)
	assert.Equal(t, timegrid.NewTime(7, 0), cfg.FacilityOpen)
	assert.Equal(t, 15, cfg.SlotMinutes)
	assert.True(t, decimal.RequireFromString("14.50").Equal(cfg.Rates.Prime))
	assert.True(t, decimal.RequireFromString("10").Equal(cfg.Rates.NonPrime), "untouched rates keep defaults")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Bad rate", "RATE_TEAM_5", "fifty"},
		{"Negative rate", "RATE_NONPRIME", "-1"},
		{"Bad open time", "FACILITY_OPEN", "6am"},
		{"Close before open", "FACILITY_CLOSE", "05:00"},
		{"Zero step", "SLOT_MINUTES", "0"},
		{"Bad bool", "LOG_DEBUG", "sometimes"},
		{"Bad ttl", "JWT_ACCESS_TOKEN_TTL", "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := Load()
	assert.Error(t, err)
}
