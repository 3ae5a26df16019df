package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults that must never survive into a real deployment. Load reports
// whether they are in effect so main can warn loudly at startup.
const (
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultAdminPassword = "changeme-admin"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	MongoURI       string
	MongoDatabase  string
	RedisURL       string
	AdminPassword  string
	SentryDSN      string
	Environment    string

	// True when the corresponding env var was unset and the insecure
	// fallback is in use.
	InsecureAdminPassword bool
	DefaultMongoURI       bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MongoURI:       getEnv("MONGODB_URI", defaultMongoURI),
		MongoDatabase:  getEnv("MONGODB_DATABASE", "eventvote"),
		RedisURL:       getEnv("REDIS_URL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		Environment:    getEnv("ENVIRONMENT", "production"),
	}

	cfg.InsecureAdminPassword = os.Getenv("ADMIN_PASSWORD") == ""
	cfg.DefaultMongoURI = os.Getenv("MONGODB_URI") == ""

	return cfg, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
