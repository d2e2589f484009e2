// Package index keeps the per-project similarity index consistent with
// project content and serves filtered similarity queries.
package index


import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storyforge/internal/apperr"
	"storyforge/internal/contextutil"
	"storyforge/internal/storage"
	"storyforge/internal/vectorstore"
)

// Embedder turns texts into vectors. Defined here from the consumer's
// perspective; implemented by llm.EmbeddingsClient.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkMeta is the per-document metadata attached to every chunk of a
// source path.
type ChunkMeta struct {
	EntityType    string
	CharacterName string
}

// Match is one retrieved chunk with its similarity score.
type Match struct {
	ID    string
	Text  string
	Score float32
	Meta  map[string]any
}

// IndexStore is the similarity-index contract: replace-by-source writes,
// path deletes, and project-scoped filtered queries.
type IndexStore interface {
	// Upsert chunks and embeds text, atomically replacing all prior chunks
	// for sourcePath. Idempotent under repeated identical input.
	Upsert(ctx context.Context, projectID, sourcePath string, meta ChunkMeta, text string) error
	// Delete removes all chunks for sourcePath; absent paths are a no-op.
	Delete(ctx context.Context, projectID, sourcePath string) error
	// DeleteProject removes every chunk of the project and returns the
	// number of distinct source paths that were indexed.
	DeleteProject(ctx context.Context, projectID string) (int, error)
	// Query returns up to topK chunks ranked by similarity, scoped to
	// projectID, with excluded paths removed before truncation.
	Query(ctx context.Context, projectID, queryText string, topK int, excludePaths []string) ([]Match, error)
}

// Store implements IndexStore over an embedding client, a vector backend,
// and the sqlite chunk repository (which holds the authoritative text).
//
// Mutations are not self-serializing: SyncManager is the only mutator and
// holds the per-project write lock around every call. Query takes the read
// side of the same lock.
type Store struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	chunkRepo   storage.ChunkStore
	chunker     *Chunker
	locks       *ProjectLocks
}

// NewStore creates a Store. locks must be the same registry handed to the
// SyncManager.
func NewStore(
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	chunkRepo storage.ChunkStore,
	locks *ProjectLocks,
) *Store {
	return &Store{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		chunkRepo:   chunkRepo,
		chunker:     NewChunker(),
		locks:       locks,
	}
}

// Upsert chunks and embeds text, then swaps the path's chunk set in sqlite
// atomically and replaces the backend points.
func (s *Store) Upsert(ctx context.Context, projectID, sourcePath string, meta ChunkMeta, text string) error {
	logger := contextutil.LoggerFromContext(ctx)

	chunks := s.chunker.Chunk(text)
	if len(chunks) == 0 {
		// Empty content still replaces: the path ends up with no chunks.
		return s.Delete(ctx, projectID, sourcePath)
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return ensureBackendKind(err, "failed to embed chunks")
	}
	if len(embeddings) != len(chunks) {
		return apperr.Wrap(apperr.ErrIndexBackend, nil,
			fmt.Sprintf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings)))
	}

	oldIDs, err := s.chunkRepo.ListIDsBySource(ctx, projectID, sourcePath)
	if err != nil {
		return fmt.Errorf("failed to list old chunk IDs: %w", err)
	}

	records := make([]*storage.ChunkRecord, len(chunks))
	points := make([]vectorstore.Point, len(chunks))
	for i, chunkText := range chunks {
		id := uuid.New().String()
		records[i] = &storage.ChunkRecord{
			ID:            id,
			ProjectID:     projectID,
			SourcePath:    sourcePath,
			EntityType:    meta.EntityType,
			CharacterName: meta.CharacterName,
			ChunkIndex:    i,
			Text:          chunkText,
		}
		points[i] = vectorstore.Point{
			ID:  id,
			Vec: embeddings[i],
			Meta: map[string]any{
				"project_id":     projectID,
				"source_path":    sourcePath,
				"entity_type":    meta.EntityType,
				"character_name": meta.CharacterName,
				"chunk_index":    i,
			},
		}
	}

	if err := s.vectorStore.Upsert(ctx, s.collection, points); err != nil {
		return ensureBackendKind(err, "failed to upsert vectors")
	}
	if err := s.chunkRepo.ReplaceSource(ctx, projectID, sourcePath, records); err != nil {
		return fmt.Errorf("failed to replace chunks: %w", err)
	}

	// Old points whose rows are gone can no longer surface in results
	// (query hydration skips them), so a failed cleanup is not fatal.
	if len(oldIDs) > 0 {
		if err := s.vectorStore.Delete(ctx, s.collection, oldIDs); err != nil {
			logger.WarnContext(ctx, "failed to delete superseded vectors",
				"source_path", sourcePath, "count", len(oldIDs), "error", err)
		}
	}

	logger.InfoContext(ctx, "indexed document",
		"project_id", projectID, "source_path", sourcePath, "chunks", len(chunks))
	return nil
}

// Delete removes all chunks for sourcePath from both stores.
func (s *Store) Delete(ctx context.Context, projectID, sourcePath string) error {
	ids, err := s.chunkRepo.ListIDsBySource(ctx, projectID, sourcePath)
	if err != nil {
		return fmt.Errorf("failed to list chunk IDs: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.vectorStore.Delete(ctx, s.collection, ids); err != nil {
		return ensureBackendKind(err, "failed to delete vectors")
	}
	if err := s.chunkRepo.DeleteBySource(ctx, projectID, sourcePath); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	return nil
}

// DeleteProject removes every chunk of the project and returns the number
// of distinct source paths that were indexed.
func (s *Store) DeleteProject(ctx context.Context, projectID string) (int, error) {
	paths, err := s.chunkRepo.ListSourcePaths(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to list source paths: %w", err)
	}

	if err := s.vectorStore.DeleteByProject(ctx, s.collection, projectID); err != nil {
		return 0, ensureBackendKind(err, "failed to delete project vectors")
	}
	if err := s.chunkRepo.DeleteByProject(ctx, projectID); err != nil {
		return 0, fmt.Errorf("failed to delete project chunks: %w", err)
	}
	return len(paths), nil
}

// Query embeds queryText and returns up to topK matches for the project,
// with excluded paths filtered out before truncation and text hydrated from
// sqlite.
func (s *Store) Query(ctx context.Context, projectID, queryText string, topK int, excludePaths []string) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	lock := s.locks.Get(projectID)
	lock.RLock()
	defer lock.RUnlock()

	embeddings, err := s.embedder.EmbedTexts(ctx, []string{queryText})
	if err != nil {
		return nil, ensureBackendKind(err, "failed to embed query")
	}
	if len(embeddings) == 0 {
		return nil, apperr.Wrap(apperr.ErrIndexBackend, nil, "no embedding returned for query")
	}

	results, err := s.vectorStore.Search(ctx, s.collection, embeddings[0], topK, vectorstore.Filter{
		ProjectID:    projectID,
		ExcludePaths: excludePaths,
	})
	if err != nil {
		return nil, ensureBackendKind(err, "failed to search vectors")
	}

	matches := make([]Match, 0, len(results))
	for _, result := range results {
		chunk, err := s.chunkRepo.GetByID(ctx, result.PointID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				logger.WarnContext(ctx, "vector point has no chunk row, skipping",
					"chunk_id", result.PointID)
				continue
			}
			return nil, fmt.Errorf("failed to fetch chunk text: %w", err)
		}
		matches = append(matches, Match{
			ID:    chunk.ID,
			Text:  chunk.Text,
			Score: result.Score,
			Meta:  result.Meta,
		})
	}

	logger.DebugContext(ctx, "index query completed",
		"project_id", projectID, "top_k", topK, "matches", len(matches))
	return matches, nil
}

// ensureBackendKind wraps err as an index backend fault unless it already
// carries that kind.
func ensureBackendKind(err error, msg string) error {
	if errors.Is(err, apperr.ErrIndexBackend) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return apperr.Wrap(apperr.ErrIndexBackend, err, msg)
}
