package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	NATS        NATSConfig
	Tracking    TrackingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Username     string
	Password     string
	DatabaseName string
	SSLMode      string
	MaxConns     int
	MaxIdleConns int
	MaxLifetime  int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret     string
	JWTExpiration int
}

type NATSConfig struct {
	Enabled     bool
	URL         string
	ClientID    string
	DurableName string
}

// TrackingConfig configures the external visitor-tracking endpoint.
// An empty endpoint disables outbound tracking calls entirely.
type TrackingConfig struct {
	Endpoint string
	Timeout  int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional
	}

	cfg := &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8080"),
			ReadTimeout:  getEnvAsIntOrDefault("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsIntOrDefault("WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsIntOrDefault("IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "5432"),
			Username:     getEnvOrDefault("DB_USER", "postgres"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "trading_admin"),
			SSLMode:      getEnvOrDefault("DB_SSL_MODE", "disable"),
			MaxConns:     getEnvAsIntOrDefault("DB_MAX_CONNS", 25),
			MaxIdleConns: getEnvAsIntOrDefault("DB_MAX_IDLE_CONNS", 10),
			MaxLifetime:  getEnvAsIntOrDefault("DB_MAX_LIFETIME", 300),
		},
		Redis: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:     getRequiredEnv("JWT_SECRET"),
			JWTExpiration: getEnvAsIntOrDefault("JWT_EXPIRATION", 3600),
		},
		NATS: NATSConfig{
			Enabled:     getEnvAsBoolOrDefault("NATS_ENABLED", false),
			URL:         getEnvOrDefault("NATS_URL", "nats://localhost:4222"),
			ClientID:    getEnvOrDefault("NATS_CLIENT_ID", "trading-admin-backend"),
			DurableName: getEnvOrDefault("NATS_DURABLE_NAME", "trading-admin-durable"),
		},
		Tracking: TrackingConfig{
			Endpoint: getEnvOrDefault("TRACKING_ENDPOINT", ""),
			Timeout:  getEnvAsIntOrDefault("TRACKING_TIMEOUT", 10),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getRequiredEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
