package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Log          LogConfig
	Cache        CacheConfig
	PubSub       PubSubConfig
	Tracing      TracingConfig
	Availability AvailabilityConfig
}

type LogConfig struct {
	Level string
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// CacheConfig is disabled when RedisAddr is empty.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// PubSubConfig is disabled when NatsURL is empty.
type PubSubConfig struct {
	NatsURL string
}

type TracingConfig struct {
	Endpoint       string
	ServiceName    string
	ServiceVersion string
}

type AvailabilityConfig struct {
	DefaultTimezone    string
	DefaultSlotMinutes int
	MaxWindowDays      int
	FetchTimeout       time.Duration
}

func Load() (*Config, error) {
	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("SERVER_READ_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("SERVER_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	maxOpenConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}

	maxIdleConns, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN environment variable is required")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("PREFERENCE_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PREFERENCE_CACHE_TTL: %w", err)
	}

	defaultSlotMinutes, err := strconv.Atoi(getEnv("DEFAULT_SLOT_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_SLOT_MINUTES: %w", err)
	}

	maxWindowDays, err := strconv.Atoi(getEnv("MAX_WINDOW_DAYS", "31"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_WINDOW_DAYS: %w", err)
	}

	fetchTimeout, err := time.ParseDuration(getEnv("FETCH_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}

	defaultTimezone := getEnv("DEFAULT_TIMEZONE", "UTC")
	if _, err := time.LoadLocation(defaultTimezone); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TIMEZONE: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         serverPort,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Database: DatabaseConfig{
			DSN:             dsn,
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       redisDB,
			TTL:           cacheTTL,
		},
		PubSub: PubSubConfig{
			NatsURL: os.Getenv("NATS_URL"),
		},
		Tracing: TracingConfig{
			Endpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:    getEnv("SERVICE_NAME", "primind-availability"),
			ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		},
		Availability: AvailabilityConfig{
			DefaultTimezone:    defaultTimezone,
			DefaultSlotMinutes: defaultSlotMinutes,
			MaxWindowDays:      maxWindowDays,
			FetchTimeout:       fetchTimeout,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}
