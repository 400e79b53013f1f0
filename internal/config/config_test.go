package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "3000", cfg.GetServerPort())
	assert.Equal(t, "socialnet.db", cfg.GetDatabasePath())
	assert.Equal(t, 24*time.Hour, cfg.GetJWTExpiration())
	assert.Equal(t, 120, cfg.GetThrottleRequestsPerMinute())
	assert.True(t, cfg.GetThrottleEnabled())
	assert.False(t, cfg.GetRedisEnabled())
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.GetAllowedOrigins())
	assert.False(t, cfg.IsProduction())
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("JWT_EXPIRATION", "1h")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("THROTTLE_REQUESTS_PER_MINUTE", "30")
	t.Setenv("ENVIRONMENT", "production")

	cfg := NewConfig()

	assert.Equal(t, "8080", cfg.GetServerPort())
	assert.Equal(t, time.Hour, cfg.GetJWTExpiration())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.GetAllowedOrigins())
	assert.Equal(t, 30, cfg.GetThrottleRequestsPerMinute())
	assert.True(t, cfg.IsProduction())
}

func TestNewConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRATION", "not-a-duration")
	t.Setenv("THROTTLE_REQUESTS_PER_MINUTE", "not-a-number")
	t.Setenv("THROTTLE_ENABLED", "not-a-bool")

	cfg := NewConfig()

	assert.Equal(t, 24*time.Hour, cfg.GetJWTExpiration())
	assert.Equal(t, 120, cfg.GetThrottleRequestsPerMinute())
	assert.True(t, cfg.GetThrottleEnabled())
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	cfg.jwtSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.environment = "sandbox"
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.throttleRequestsPerMinute = 0
	assert.Error(t, cfg.Validate())
}
