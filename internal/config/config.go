package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string // base URL the dashboard uses to reach the API

	// Durable sink. Empty means fallback-only mode: predictions are logged
	// to the local JSONL file and history reads are unavailable.
	DatabaseURL string

	// Artifacts and data files
	ModelPath         string // LightGBM text-format scoring artifact
	FallbackLogPath   string // append-only JSONL prediction log
	ReferenceDataPath string // CSV sampled by the traffic generator

	// Logging
	LogLevel string

	// CORS
	CORSOrigins string // Comma-separated allowed origins
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using process environment")
	}

	return &Config{
		Env:               getEnv("ENV", "development"),
		ServerAddr:        getEnv("SERVER_ADDR", ":8000"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8000"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		ModelPath:         getEnv("MODEL_PATH", "results/lightgbm_optimized.txt"),
		FallbackLogPath:   getEnv("FALLBACK_LOG_PATH", "logs/predictions.jsonl"),
		ReferenceDataPath: getEnv("REFERENCE_DATA_PATH", "data/dataset_top10_features_data.csv"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       getEnv("CORS_ORIGINS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
