package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	APIBaseURL    string
	BasePath      string
	SessionSecret string
	AppEnv        string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:          getEnv("PORT", "3000"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
		BasePath:      getEnv("BASE_PATH", "/app"),
		SessionSecret: getEnv("SESSION_SECRET", "secret"),
		AppEnv:        getEnv("APP_ENV", "local"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
