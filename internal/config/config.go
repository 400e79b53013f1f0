// Package config provides environment-driven application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig exposes server-specific configuration.
type ServerConfig interface {
	GetServerPort() string
	GetReadTimeout() time.Duration
	GetWriteTimeout() time.Duration
	GetIdleTimeout() time.Duration
	GetAllowedOrigins() []string
}

// DatabaseConfig exposes database-specific configuration.
type DatabaseConfig interface {
	GetDatabasePath() string
}

// SecurityConfig exposes security-related configuration.
type SecurityConfig interface {
	GetJWTSecret() string
	GetJWTExpiration() time.Duration
}

// ThrottleConfig exposes request throttling configuration.
type ThrottleConfig interface {
	GetThrottleEnabled() bool
	GetThrottleRequestsPerMinute() int
	GetRedisEnabled() bool
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

// AppConfig implements all configuration interfaces.
type AppConfig struct {
	serverPort               string
	databasePath             string
	jwtSecret                string
	environment              string
	logLevel                 string
	allowedOrigins           []string
	readTimeout              time.Duration
	writeTimeout             time.Duration
	idleTimeout              time.Duration
	jwtExpiration            time.Duration
	throttleEnabled          bool
	throttleRequestsPerMinute int
	redisEnabled             bool
	redisAddr                string
	redisPassword            string
	redisDB                  int
}

// NewConfig creates a configuration instance with defaults overridden from
// environment variables.
func NewConfig() *AppConfig {
	return &AppConfig{
		serverPort:               getEnvString("SERVER_PORT", "3000"),
		databasePath:             getEnvString("DATABASE_PATH", "socialnet.db"),
		jwtSecret:                getEnvString("JWT_SECRET", defaultJWTSecret),
		environment:              getEnvString("ENVIRONMENT", "development"),
		logLevel:                 getEnvString("LOG_LEVEL", "info"),
		allowedOrigins:           getEnvList("ALLOWED_ORIGINS", "http://localhost:4200"),
		readTimeout:              getEnvDuration("READ_TIMEOUT", "15s"),
		writeTimeout:             getEnvDuration("WRITE_TIMEOUT", "15s"),
		idleTimeout:              getEnvDuration("IDLE_TIMEOUT", "60s"),
		jwtExpiration:            getEnvDuration("JWT_EXPIRATION", "24h"),
		throttleEnabled:          getEnvBool("THROTTLE_ENABLED", true),
		throttleRequestsPerMinute: getEnvInt("THROTTLE_REQUESTS_PER_MINUTE", 120),
		redisEnabled:             getEnvBool("REDIS_ENABLED", false),
		redisAddr:                getEnvString("REDIS_ADDR", "localhost:6379"),
		redisPassword:            getEnvString("REDIS_PASSWORD", ""),
		redisDB:                  getEnvInt("REDIS_DB", 0),
	}
}

// GetServerPort returns the HTTP listen port.
func (c *AppConfig) GetServerPort() string { return c.serverPort }

// GetDatabasePath returns the SQLite database file path.
func (c *AppConfig) GetDatabasePath() string { return c.databasePath }

// GetJWTSecret returns the JWT signing secret.
func (c *AppConfig) GetJWTSecret() string { return c.jwtSecret }

// GetJWTExpiration returns the access token lifetime.
func (c *AppConfig) GetJWTExpiration() time.Duration { return c.jwtExpiration }

// GetEnvironment returns the deployment environment name.
func (c *AppConfig) GetEnvironment() string { return c.environment }

// GetLogLevel returns the configured log level.
func (c *AppConfig) GetLogLevel() string { return c.logLevel }

// IsProduction reports whether the application runs in production.
func (c *AppConfig) IsProduction() bool { return c.environment == "production" }

// GetAllowedOrigins returns the CORS origin allowlist.
func (c *AppConfig) GetAllowedOrigins() []string { return c.allowedOrigins }

// GetReadTimeout returns the server read timeout.
func (c *AppConfig) GetReadTimeout() time.Duration { return c.readTimeout }

// GetWriteTimeout returns the server write timeout.
func (c *AppConfig) GetWriteTimeout() time.Duration { return c.writeTimeout }

// GetIdleTimeout returns the server idle timeout.
func (c *AppConfig) GetIdleTimeout() time.Duration { return c.idleTimeout }

// GetThrottleEnabled reports whether request throttling is active.
func (c *AppConfig) GetThrottleEnabled() bool { return c.throttleEnabled }

// GetThrottleRequestsPerMinute returns the per-client request budget.
func (c *AppConfig) GetThrottleRequestsPerMinute() int { return c.throttleRequestsPerMinute }

// GetRedisEnabled reports whether the distributed throttle window is active.
func (c *AppConfig) GetRedisEnabled() bool { return c.redisEnabled }

// GetRedisAddr returns the Redis server address.
func (c *AppConfig) GetRedisAddr() string { return c.redisAddr }

// GetRedisPassword returns the Redis password.
func (c *AppConfig) GetRedisPassword() string { return c.redisPassword }

// GetRedisDB returns the Redis database number.
func (c *AppConfig) GetRedisDB() int { return c.redisDB }

// Validate checks if the configuration is usable.
func (c *AppConfig) Validate() error {
	if c.serverPort == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if c.jwtSecret == "" {
		return fmt.Errorf("JWT secret cannot be empty")
	}
	if len(c.jwtSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters long")
	}
	if c.environment != "development" && c.environment != "staging" && c.environment != "production" {
		return fmt.Errorf("environment must be one of: development, staging, production")
	}
	if c.throttleRequestsPerMinute < 1 {
		return fmt.Errorf("throttle requests per minute must be positive")
	}
	return nil
}

const defaultJWTSecret = "socialnet-development-jwt-secret-key-32chars-minimum-length"

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Second
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnvString(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
