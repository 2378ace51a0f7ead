// Package config loads application configuration from the environment.
// A .env file is honored when present; every value has a working default
// so the server runs with zero configuration.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port           int      // HTTP port (PORT)
	DBPath         string   // SQLite database path, ":memory:" allowed (FD_DB)
	LogLevel       string   // debug, info, warn, error (LOG_LEVEL)
	LogPretty      bool     // console output instead of JSON (LOG_PRETTY)
	AllowedOrigins []string // CORS origins, comma separated (CORS_ORIGINS)
}

// Load reads configuration from the environment, loading .env first if one
// exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:      getEnvInt("PORT", 8084),
		DBPath:    getEnv("FD_DB", "deposits.db"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", true),
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS",
			"http://localhost:5173,http://localhost:3000")),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
