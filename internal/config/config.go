package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// MinPipelineKeyLength is the minimum accepted length for the pipeline API
// key. A shorter or missing key disables the pipeline endpoints entirely
// rather than running with a guessable credential.
const MinPipelineKeyLength = 16

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (admin catalog maintenance)
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Pipeline
	PipelineAPIKey     string
	FeedURL            string
	FeedTimeout        time.Duration
	RefreshMinInterval time.Duration

	// Admin bootstrap (used only when the users table is empty)
	AdminEmail    string
	AdminPassword string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "midas"),
		DBPassword: getEnv("DB_PASSWORD", "midas"),
		DBName:     getEnv("DB_NAME", "midas"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Pipeline
		PipelineAPIKey: os.Getenv("PIPELINE_API_KEY"),
		FeedURL:        getEnv("FEED_URL", ""),

		// Admin bootstrap
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	// Fail closed on a weak pipeline credential. An empty key is allowed
	// and means the pipeline endpoints are not configured; a short key is
	// a configuration error.
	if config.PipelineAPIKey != "" && len(config.PipelineAPIKey) < MinPipelineKeyLength {
		return nil, fmt.Errorf("PIPELINE_API_KEY must be at least %d characters", MinPipelineKeyLength)
	}

	expDur, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value, falling back to 24h\n")
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	feedTimeout, err := time.ParseDuration(getEnv("FEED_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_TIMEOUT: %w", err)
	}
	config.FeedTimeout = feedTimeout

	minInterval, err := time.ParseDuration(getEnv("REFRESH_MIN_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_MIN_INTERVAL: %w", err)
	}
	config.RefreshMinInterval = minInterval

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
