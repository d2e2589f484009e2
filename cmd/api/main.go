package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"storyforge/internal/assemble"
	"storyforge/internal/config"
	"storyforge/internal/content"
	"storyforge/internal/generate"
	"storyforge/internal/handlers"
	"storyforge/internal/http"
	"storyforge/internal/index"
	"storyforge/internal/llm"
	"storyforge/internal/storage"
	"storyforge/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	projectRepo := storage.NewProjectRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	contentStore := content.NewFSStore(cfg.ProjectsRoot)
	slog.Info("Content store ready", "root", cfg.ProjectsRoot)

	ctx := context.Background()
	locks := index.NewProjectLocks()

	// The index backend is optional: with indexing disabled, queries return
	// no matches and sync operations are no-ops, but generation still works
	// from explicit context.
	var indexStore index.IndexStore = index.NewNullStore()
	var backendChecker handlers.BackendChecker
	if cfg.IndexingEnabled {
		vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

		// Validate embedding client vector size (fail-fast)
		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
		testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
		if err != nil {
			log.Fatalf("Failed to validate embedding client: %v", err)
		}
		if len(testEmbeddings) == 0 {
			log.Fatal("Embedding client returned no embedding for the validation text")
		}
		if len(testEmbeddings[0]) != cfg.QdrantVectorSize {
			log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
		}
		slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

		indexStore = index.NewStore(embedder, vectorStore, cfg.QdrantCollection, chunkRepo, locks)
		backendChecker = vectorStore
	} else {
		slog.Warn("Indexing disabled, similarity retrieval is a no-op")
	}

	syncManager := index.NewSyncManager(indexStore, contentStore, locks)
	assembler := assemble.NewAssembler(projectRepo, contentStore)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout)

	orchestrator := generate.NewOrchestrator(
		assembler,
		indexStore,
		llmClient,
		syncManager,
		contentStore,
		generate.Options{
			QueryTopK:          cfg.QueryTopK,
			GenerationTopK:     cfg.GenerationTopK,
			SuggestionCount:    cfg.SuggestionCount,
			PreviousSceneCount: cfg.PreviousSceneCount,
		},
	)
	slog.Info("Orchestrator initialized")

	router := http.NewRouter(&http.Deps{
		Service:        orchestrator,
		Syncer:         syncManager,
		ProjectRepo:    projectRepo,
		DB:             db,
		BackendChecker: backendChecker,
		CollectionName: cfg.QdrantCollection,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
