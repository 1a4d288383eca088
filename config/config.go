package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the server.
type Config struct {
	Port           string
	Env            string
	MongoURI       string
	MongoDB        string
	RedisURL       string
	JWTSecret      string
	StorageTimeout time.Duration
	CacheTTL       time.Duration
}

// Load reads configuration from the environment (optionally a .env file)
// and validates required fields.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "5000"),
		Env:            getEnv("APP_ENV", "development"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGODB_DB", "grocery-store"),
		RedisURL:       getEnv("REDIS_URL", ""),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		StorageTimeout: 10 * time.Second,
		CacheTTL:       5 * time.Minute,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
