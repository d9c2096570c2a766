// Package config centralises all environment configuration for the API.
// It should be imported only by `cmd/server` (and test code). Business-logic
// layers receive an already-built Config instance via dependency-injection.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
)

// Config holds every runtime option the server needs.
// Keep it flat and simple, prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string `validate:"required"`

	// Data store
	MongoURI        string `validate:"required"`
	DBName          string `validate:"required"`
	PetsCollection  string `validate:"required"`
	VectorIndexName string `validate:"required"`

	// Conversation pipeline
	WorkingLanguage string `validate:"len=2"`       // language the pipeline normalises to
	ResponseLocale  string `validate:"oneof=en de"` // language of the fixed fallback answers
	SearchLimit     int    `validate:"min=1,max=50"`

	// Model providers
	LLMProvider    string `validate:"oneof=openai vertex dummy"`
	OpenAIToken    string
	OpenAIModel    string
	EmbeddingModel string
	GCPProjectID   string
	GCPLocation    string

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load parses the environment (and an optional .env file) into Config.
func Load() (Config, error) {
	// godotenv.Load() is a no-op if .env doesn't exist, safe in production.
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "3333"),
		MongoURI:        os.Getenv("ATLAS_MONGODB_URI"),
		DBName:          getEnv("DB", "schnauzenportal"),
		PetsCollection:  getEnv("COLLECTION", "pets"),
		VectorIndexName: getEnv("VECTOR_SEARCH_INDEX_NAME", "pet_embedding_index"),
		WorkingLanguage: getEnv("WORKING_LANGUAGE", "de"),
		ResponseLocale:  getEnv("RESPONSE_LOCALE", "en"),
		SearchLimit:     getInt("SEARCH_LIMIT", 10),
		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		OpenAIToken:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),
		GCPProjectID:    os.Getenv("GCP_PROJECT_ID"),
		GCPLocation:     getEnv("GCP_LOCATION", "us-central1"),
		ReadTimeout:     getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout:    getDuration("WRITE_TIMEOUT_SEC", 30),
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return Config{}, oops.Errorf("failed to validate config: %w", err)
	}

	// Provider credentials are only required for the provider in use.
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIToken == "" {
			return Config{}, oops.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	case "vertex":
		if cfg.GCPProjectID == "" {
			return Config{}, oops.Errorf("GCP_PROJECT_ID is required when LLM_PROVIDER=vertex")
		}
	}

	return cfg, nil
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt reads an integer from env, falling back to defaultVal.
func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid integer env var, using default", "key", key, "default", defaultVal)
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	return time.Duration(getInt(key, defaultSec)) * time.Second
}
