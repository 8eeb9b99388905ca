package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"portside_pos_backend/pkg/utils"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds everything the server needs at start-up.
type Config struct {
	Port     string
	LogLevel string
	GinMode  string

	StorageDriver string
	DB            DBConfig

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins []string

	Location            *time.Location
	KitchenPollInterval time.Duration

	AMQPURL      string
	AMQPExchange string
}

// DBConfig describes the Postgres connection used by the collection store.
type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	cfg := &Config{
		Port:          utils.Getenv("PORT", "8080"),
		LogLevel:      utils.Getenv("LOG_LEVEL", "info"),
		GinMode:       utils.Getenv("GIN_MODE", "release"),
		StorageDriver: strings.ToLower(utils.Getenv("STORAGE_DRIVER", StoragePostgres)),
		DB: DBConfig{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "portside_pos"),
			Password:   utils.Getenv("DB_PASSWORD", "portside_pos"),
			Name:       utils.Getenv("DB_NAME", "portside_pos"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		JWTSecret:    utils.Getenv("JWT_SECRET", ""),
		AMQPURL:      utils.Getenv("AMQP_URL", ""),
		AMQPExchange: utils.Getenv("AMQP_EXCHANGE", "pos.events"),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(utils.Getenv("JWT_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.KitchenPollInterval, err = time.ParseDuration(utils.Getenv("KITCHEN_POLL_INTERVAL", "3s")); err != nil {
		return nil, fmt.Errorf("invalid KITCHEN_POLL_INTERVAL: %w", err)
	}
	if cfg.KitchenPollInterval < time.Second {
		return nil, fmt.Errorf("KITCHEN_POLL_INTERVAL must be at least 1s, got %s", cfg.KitchenPollInterval)
	}

	tz := utils.Getenv("APP_TIMEZONE", "Local")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}

	cfg.CORSAllowedOrigins = utils.GetenvList("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")

	return cfg, nil
}
