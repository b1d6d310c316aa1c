package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    string
	ClientURL    string // Origin allowed by CORS, the SPA's URL
	LogLevel     string
}

// Load loads configuration from the environment, reading a .env file first if
// one exists. JWT_SECRET has no default: signing tokens with a guessable key
// would make every session forgeable.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables win either way.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./wizallet.db"),
		JWTSecret:    secret,
		ClientURL:    getEnv("CLIENT_URL", "http://localhost:3000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
