package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Cache   CacheConfig
	API     APIConfig
	DB      DatabaseConfig
	Ingest  IngestConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// DataConfig points at the two backing files and selects where events come
// from: the CSV directly, or the sqlite store written by stubble-ingest.
type DataConfig struct {
	BoundaryPath string
	EventsPath   string
	EventsSource string // "csv" or "sqlite"
}

type CacheConfig struct {
	TTL time.Duration
}

type APIConfig struct {
	RateLimitRPS int
}

type DatabaseConfig struct {
	Path string
}

// IngestConfig sizes the stubble-ingest batch writer.
type IngestConfig struct {
	Workers   int
	BatchSize int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Data: DataConfig{
			BoundaryPath: getEnv("BOUNDARY_PATH", "./data/punjab.geojson"),
			EventsPath:   getEnv("EVENTS_PATH", "./data/stubble_events.csv"),
			EventsSource: getEnv("EVENTS_SOURCE", "csv"),
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL", time.Hour),
		},
		API: APIConfig{
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/stubble-watch.db"),
		},
		Ingest: IngestConfig{
			Workers:   getEnvInt("INGEST_WORKERS", 2),
			BatchSize: getEnvInt("INGEST_BATCH_SIZE", 500),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Data.EventsSource != "csv" && c.Data.EventsSource != "sqlite" {
		return fmt.Errorf("invalid events source: %s", c.Data.EventsSource)
	}

	if c.Cache.TTL < time.Minute {
		return fmt.Errorf("cache TTL must be at least 1 minute")
	}

	if c.API.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}

	if c.Ingest.Workers < 1 || c.Ingest.BatchSize < 1 {
		return fmt.Errorf("ingest workers and batch size must be positive")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
