package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the full application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Hostaway HostawayConfig
	Job      JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig is only consumed by the worker binary (asynq queue backend).
// The API binary never opens a Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type HostawayConfig struct {
	BaseURL   string
	AccountID string
	APIKey    string
}

type JobConfig struct {
	SyncCronSpec   string // cron spec for the periodic review sync
	SyncTimeoutMin int
}

// Load reads the configuration from environment variables with defaults.
func Load() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	syncTimeout, err := strconv.Atoi(getEnv("JOB_SYNC_TIMEOUT_MIN", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_SYNC_TIMEOUT_MIN: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Reviews API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "reviews"),
			Password: getEnv("DB_PASSWORD", "secret"),
			Database: getEnv("DB_NAME", "reviews_dev"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Hostaway: HostawayConfig{
			BaseURL:   getEnv("HOSTAWAY_BASE_URL", "https://api.hostaway.com"),
			AccountID: getEnv("HOSTAWAY_ACCOUNT_ID", "61148"),
			APIKey:    getEnv("HOSTAWAY_API_KEY", ""),
		},
		Job: JobConfig{
			SyncCronSpec:   getEnv("JOB_SYNC_CRON", "0 * * * *"),
			SyncTimeoutMin: syncTimeout,
		},
	}

	return cfg, nil
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
