package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port          string
	DatabaseDSN   string
	SessionSecret string
	Env           string
	Migrations    bool
	Seed          bool
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
// The sqlite default keeps local development zero-config; production sets
// DATABASE_DSN to a postgres URL.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "workout_tracker.db")
	cfg.SessionSecret = getEnv("SESSION_SECRET", "")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.Migrations = ParseBool("MIGRATIONS", false)
	cfg.Seed = ParseBool("DB_SEED", true)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
