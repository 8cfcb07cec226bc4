package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// State store backends
const (
	StateStoreMemory = "memory"
	StateStoreRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	MetricsAddr string
	Database    DatabaseConfig
	State       StateConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// StateConfig selects where dialogue state lives
type StateConfig struct {
	Store         string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "vibetracker"),
			User:     getEnv("DB_USER", "vibetracker"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		State: StateConfig{
			Store:         getEnv("STATE_STORE", StateStoreMemory),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisPrefix:   getEnv("REDIS_PREFIX", "vibetracker:"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	switch cfg.State.Store {
	case StateStoreMemory, StateStoreRedis:
	default:
		return nil, fmt.Errorf("STATE_STORE must be %q or %q, got %q", StateStoreMemory, StateStoreRedis, cfg.State.Store)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}
	cfg.State.RedisDB = redisDB

	ttl, err := time.ParseDuration(getEnv("STATE_TTL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("STATE_TTL must be a duration: %w", err)
	}
	cfg.State.TTL = ttl

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
