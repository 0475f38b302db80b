package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            ListenTarget
	PublicDir       string
	Env             string
	BodyLimit       int64
	ShutdownTimeout time.Duration
	// TrustProxyHops counts the reverse proxies in front of the server.
	TrustProxyHops int
}

// CatalogConfig points at an optional YAML catalog overriding the embedded one.
type CatalogConfig struct {
	File string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig limits appointment submissions per client IP.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

const defaultPort = 3000

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("HOST", ""),
			Port:            NormalizePort(getEnv("PORT", strconv.Itoa(defaultPort))),
			PublicDir:       getEnv("PUBLIC_DIR", "public"),
			Env:             getEnv("APP_ENV", getEnv("NODE_ENV", "development")),
			BodyLimit:       int64(getEnvAsInt("BODY_LIMIT_BYTES", 1<<20)),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			TrustProxyHops:  getEnvAsInt("TRUST_PROXY_HOPS", 0),
		},
		Catalog: CatalogConfig{
			File: getEnv("CATALOG_FILE", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("APPOINTMENT_RATE_LIMIT", 10),
			Window:   getEnvAsDuration("APPOINTMENT_RATE_WINDOW", time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "hospital-site"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if cfg.RateLimit.Requests <= 0 {
		return nil, fmt.Errorf("APPOINTMENT_RATE_LIMIT must be positive, got %d", cfg.RateLimit.Requests)
	}
	if cfg.Server.TrustProxyHops < 0 {
		return nil, fmt.Errorf("TRUST_PROXY_HOPS must not be negative, got %d", cfg.Server.TrustProxyHops)
	}
	if cfg.Server.BodyLimit <= 0 {
		return nil, fmt.Errorf("BODY_LIMIT_BYTES must be positive, got %d", cfg.Server.BodyLimit)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// IsTest reports whether the server runs under tests; access logging is off there.
func (c *ServerConfig) IsTest() bool {
	return c.Env == "test"
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
