package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	DatabaseDSN    string
	Port           string
	GinMode        string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins string
	FrontendDir    string
}

// Load reads configuration from environment variables, loading a .env file
// first when one exists. Missing values fall back to development defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=cardapio port=5432 sslmode=disable"),
		Port:           getEnv("PORT", "3001"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		JWTSecret:      getEnv("JWT_SECRET", "cardapio-dev-secret"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		FrontendDir:    getEnv("FRONTEND_DIR", "./frontend/build"),
	}

	ttlHours, err := strconv.Atoi(getEnv("JWT_EXPIRES_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_HOURS: %q", os.Getenv("JWT_EXPIRES_HOURS"))
	}
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour

	return cfg, nil
}

// IsRelease returns true when running in release mode, where internal error
// details are hidden from responses.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
