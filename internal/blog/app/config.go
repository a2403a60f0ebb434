package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrDatabaseFileRequired reports that BLOG_DATABASE_FILE is unset. The
// database location must be explicit, there is no fallback path.
var ErrDatabaseFileRequired = errors.New("BLOG_DATABASE_FILE must be set")

type Config struct {
	DatabaseFile string // Required: path to SQLite database file
	PepperFile   string // Optional: path to password hashing pepper file (default: ./pepper)

	SessionTTL         time.Duration // Optional: absolute session lifetime (default: 168h)
	SessionIdleTimeout time.Duration // Optional: sliding inactivity window (default: 30m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Session cleanup interval (default: 1h)
}

// LoadConfig reads configuration from the environment, after loading a .env
// file if one is present in the working directory.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseFile:         os.Getenv("BLOG_DATABASE_FILE"),
		PepperFile:           getEnvOrDefault("BLOG_PEPPER_FILE", "pepper"),
		SessionTTL:           getEnvDurationOrDefault("BLOG_SESSION_TTL", 7*24*time.Hour),
		SessionIdleTimeout:   getEnvDurationOrDefault("BLOG_SESSION_IDLE_TIMEOUT", 30*time.Minute),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.DatabaseFile == "" {
		return Config{}, ErrDatabaseFileRequired
	}

	return cfg, nil
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are taken as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
