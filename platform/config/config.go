// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// TrackerConfig provides settings for the external card tracking system.
type TrackerConfig interface {
	GetTrackerBaseURL() string
	GetTrackerAPIKey() string
	GetTrackerDefaultListID() string
	GetTrackerTimeout() time.Duration
	IsTrackerEnabled() bool
}

// SchedulerConfig provides settings for the background task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetWorkerConcurrency() int
}

// AssignmentConfig provides settings for the assignment allocator.
type AssignmentConfig interface {
	// GetExcludedStatuses returns statuses that do not count toward a
	// representative's active lead load.
	GetExcludedStatuses() []string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	JWTAccessSecret      string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	TrackerBaseURL       string
	TrackerAPIKey        string
	TrackerDefaultListID string
	TrackerTimeout       time.Duration
	RedisURL             string
	AsynqQueueName       string
	WorkerConcurrency    int
	ExcludedStatuses     []string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// TrackerConfig implementation
func (c *Config) GetTrackerBaseURL() string       { return c.TrackerBaseURL }
func (c *Config) GetTrackerAPIKey() string        { return c.TrackerAPIKey }
func (c *Config) GetTrackerDefaultListID() string { return c.TrackerDefaultListID }
func (c *Config) GetTrackerTimeout() time.Duration {
	return c.TrackerTimeout
}
func (c *Config) IsTrackerEnabled() bool { return c.TrackerBaseURL != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetWorkerConcurrency() int { return c.WorkerConcurrency }

// AssignmentConfig implementation
func (c *Config) GetExcludedStatuses() []string { return c.ExcludedStatuses }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	trackerTimeout, err := time.ParseDuration(getEnv("TRACKER_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRACKER_TIMEOUT: %w", err)
	}
	workerConcurrency, err := strconv.Atoi(getEnv("WORKER_CONCURRENCY", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %w", err)
	}
	if workerConcurrency < 1 {
		return nil, fmt.Errorf("WORKER_CONCURRENCY must be at least 1, got %d", workerConcurrency)
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		TrackerBaseURL:       getEnv("TRACKER_BASE_URL", ""),
		TrackerAPIKey:        getEnv("TRACKER_API_KEY", ""),
		TrackerDefaultListID: getEnv("TRACKER_DEFAULT_LIST_ID", ""),
		TrackerTimeout:       trackerTimeout,
		RedisURL:             getEnv("REDIS_URL", ""),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "default"),
		WorkerConcurrency:    workerConcurrency,
		ExcludedStatuses:     splitCSV(getEnv("ASSIGN_EXCLUDED_STATUSES", "Contacted,Completed,Lost")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.TrackerBaseURL != "" && cfg.TrackerDefaultListID == "" {
		return nil, fmt.Errorf("TRACKER_DEFAULT_LIST_ID is required when TRACKER_BASE_URL is set")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
