package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries server-level settings. Component-specific options (model
// name, retry counts, database coordinates) stay env-driven inside their
// packages.
type Config struct {
	Port           string
	AllowedOrigins []string
}

// Load reads .env when present and builds the config from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment")
	}

	origins := []string{"*"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = []string{v}
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: origins,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
