package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	LLMTimeout         time.Duration
	EmbeddingBaseURL   string
	EmbeddingModelName string

	ProjectsRoot string
	DBPath       string

	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int
	IndexingEnabled  bool

	QueryTopK          int
	GenerationTopK     int
	SuggestionCount    int
	PreviousSceneCount int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults for
// optional fields and validating required ones. A .env file in the current
// directory is loaded first; variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		ProjectsRoot:       getEnv("PROJECTS_ROOT", ""),
		DBPath:             getEnv("DB_PATH", "./data/storyforge.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "story_chunks"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	if cfg.ProjectsRoot == "" {
		return nil, fmt.Errorf("PROJECTS_ROOT is required")
	}

	var err error
	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", 120*time.Second); err != nil {
		return nil, err
	}
	if cfg.QueryTopK, err = getPositiveInt("QUERY_TOP_K", 5); err != nil {
		return nil, err
	}
	if cfg.GenerationTopK, err = getPositiveInt("GENERATION_TOP_K", 8); err != nil {
		return nil, err
	}
	if cfg.SuggestionCount, err = getPositiveInt("SUGGESTION_COUNT", 3); err != nil {
		return nil, err
	}
	if cfg.PreviousSceneCount, err = getPositiveInt("PREVIOUS_SCENE_COUNT", 3); err != nil {
		return nil, err
	}

	cfg.IndexingEnabled = getEnv("INDEXING_ENABLED", "true") != "false"
	if cfg.IndexingEnabled {
		// The vector size must match the embedding model output. If it
		// changes, the qdrant collection must be recreated.
		sizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
		if sizeStr == "" {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required when indexing is enabled")
		}
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a positive integer")
		}
		cfg.QdrantVectorSize = size
	}

	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration (e.g. 90s)", key)
	}
	return d, nil
}
