package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Auth     AuthConfig
	Refresh  RefreshConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds token signing configuration. SecretKey must be a base64
// urlsafe 32-byte fernet key; access and refresh TTLs are in minutes and days
// respectively.
type AuthConfig struct {
	SecretKey          string
	AccessTokenMinutes int
	RefreshTokenDays   int
}

// RefreshConfig controls the background price-refresh sweep.
type RefreshConfig struct {
	CronSpec string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/homeledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Auth: AuthConfig{
			SecretKey:          os.Getenv("API_SECRET_KEY"),
			AccessTokenMinutes: getEnvInt("ACCESS_TOKEN_MINUTES", 15),
			RefreshTokenDays:   getEnvInt("REFRESH_TOKEN_DAYS", 7),
		},
		Refresh: RefreshConfig{
			CronSpec: getEnv("PRICE_REFRESH_CRON", "@every 5m"),
		},
	}

	if config.Auth.SecretKey == "" {
		return nil, fmt.Errorf("API_SECRET_KEY is required")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
