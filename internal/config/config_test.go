package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PROJECTS_ROOT", t.TempDir())
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("QDRANT_VECTOR_SIZE", "1024")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.QueryTopK != 5 {
		t.Errorf("QueryTopK = %d, want 5", cfg.QueryTopK)
	}
	if cfg.GenerationTopK != 8 {
		t.Errorf("GenerationTopK = %d, want 8", cfg.GenerationTopK)
	}
	if cfg.SuggestionCount != 3 {
		t.Errorf("SuggestionCount = %d, want 3", cfg.SuggestionCount)
	}
	if cfg.PreviousSceneCount != 3 {
		t.Errorf("PreviousSceneCount = %d, want 3", cfg.PreviousSceneCount)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Errorf("LLMTimeout = %v, want 120s", cfg.LLMTimeout)
	}
	if !cfg.IndexingEnabled {
		t.Errorf("IndexingEnabled = false, want true by default")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadMissingProjectsRoot(t *testing.T) {
	t.Setenv("PROJECTS_ROOT", "")
	t.Setenv("QDRANT_VECTOR_SIZE", "1024")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when PROJECTS_ROOT is missing")
	}
}

func TestLoadMissingVectorSize(t *testing.T) {
	t.Setenv("PROJECTS_ROOT", t.TempDir())
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("QDRANT_VECTOR_SIZE", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when QDRANT_VECTOR_SIZE is missing")
	}
}

func TestLoadIndexingDisabledSkipsVectorSize(t *testing.T) {
	t.Setenv("PROJECTS_ROOT", t.TempDir())
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("QDRANT_VECTOR_SIZE", "")
	t.Setenv("INDEXING_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.IndexingEnabled {
		t.Fatal("IndexingEnabled = true, want false")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad vector size", "QDRANT_VECTOR_SIZE", "zero"},
		{"negative top k", "QUERY_TOP_K", "-1"},
		{"bad timeout", "LLM_TIMEOUT", "soon"},
		{"bad log level", "LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
