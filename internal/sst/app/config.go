package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string // Required: issuer claim for tokens
	BootstrapToken string // Optional: token required to perform bootstrap

	AccessTTL    time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL   time.Duration // Optional: refresh token lifetime (default: 7 days)
	ChallengeTTL time.Duration // Optional: two-factor challenge lifetime (default: 5m)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./sst.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               os.Getenv("SST_ISSUER"),
		BootstrapToken:       os.Getenv("BOOTSTRAP_TOKEN"),
		AccessTTL:            getEnvDurationOrDefault("SST_ACCESS_TTL", 0),
		RefreshTTL:           getEnvDurationOrDefault("SST_REFRESH_TTL", 0),
		ChallengeTTL:         getEnvDurationOrDefault("SST_CHALLENGE_TTL", 0),
		DatabaseFile:         getEnvOrDefault("SST_DATABASE_FILE", "sst.db"),
		PepperFile:           getEnvOrDefault("SST_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "sst-platform"
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
