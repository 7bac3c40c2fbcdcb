package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	MongoURL      string
	MongoDatabase string
}

// Load reads configuration from .env (if present) and the environment.
// MONGODB_URL has no sane default and missing it is a startup error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "5002"),
		DatabaseURL:   getEnv("DATABASE_URL", "habitgoals.db"),
		MongoURL:      getEnv("MONGODB_URL", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "habitgoals"),
	}
	if cfg.MongoURL == "" {
		return nil, errors.New("MONGODB_URL is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
