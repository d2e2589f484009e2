package storage


import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storyforge/internal/apperr"
)

// ChunkStore defines chunk persistence operations.
type ChunkStore interface {
	// InsertBatch inserts chunks in one transaction. Chunk IDs must be set.
	InsertBatch(ctx context.Context, chunks []*ChunkRecord) error
	// GetByID returns a chunk or apperr.ErrNotFound.
	GetByID(ctx context.Context, id string) (*ChunkRecord, error)
	// ListIDsBySource returns chunk IDs for a source path, ordered by chunk_index.
	ListIDsBySource(ctx context.Context, projectID, sourcePath string) ([]string, error)
	// ListSourcePaths returns the distinct source paths indexed for a project.
	ListSourcePaths(ctx context.Context, projectID string) ([]string, error)
	// ReplaceSource atomically swaps a source path's chunk set.
	ReplaceSource(ctx context.Context, projectID, sourcePath string, chunks []*ChunkRecord) error
	// DeleteBySource removes all chunks for a source path. No-op when absent.
	DeleteBySource(ctx context.Context, projectID, sourcePath string) error
	// DeleteByProject removes all chunks for a project.
	DeleteByProject(ctx context.Context, projectID string) error
}

// ChunkRepo implements ChunkStore over SQLite.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// InsertBatch inserts chunks in one transaction so a source path's chunk set
// never becomes partially visible.
func (r *ChunkRepo) InsertBatch(ctx context.Context, chunks []*ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, chunk := range chunks {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO chunks (id, project_id, source_path, entity_type, character_name, chunk_index, text) VALUES (?, ?, ?, ?, ?, ?, ?)",
			chunk.ID, chunk.ProjectID, chunk.SourcePath, chunk.EntityType, chunk.CharacterName, chunk.ChunkIndex, chunk.Text,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunks: %w", err)
	}
	return nil
}

// ReplaceSource deletes the path's existing chunks and inserts the new set
// in one transaction, so readers never observe a stale mixture.
func (r *ChunkRepo) ReplaceSource(ctx context.Context, projectID, sourcePath string, chunks []*ChunkRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE project_id = ? AND source_path = ?",
		projectID, sourcePath,
	); err != nil {
		return fmt.Errorf("failed to delete old chunks: %w", err)
	}

	for _, chunk := range chunks {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO chunks (id, project_id, source_path, entity_type, character_name, chunk_index, text) VALUES (?, ?, ?, ?, ?, ?, ?)",
			chunk.ID, chunk.ProjectID, chunk.SourcePath, chunk.EntityType, chunk.CharacterName, chunk.ChunkIndex, chunk.Text,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunk replacement: %w", err)
	}
	return nil
}

// GetByID returns a chunk or apperr.ErrNotFound.
func (r *ChunkRepo) GetByID(ctx context.Context, id string) (*ChunkRecord, error) {
	var chunk ChunkRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, project_id, source_path, entity_type, character_name, chunk_index, text FROM chunks WHERE id = ?",
		id,
	).Scan(&chunk.ID, &chunk.ProjectID, &chunk.SourcePath, &chunk.EntityType, &chunk.CharacterName, &chunk.ChunkIndex, &chunk.Text)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("chunk %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}
	return &chunk, nil
}

// ListIDsBySource returns chunk IDs for a source path, ordered by chunk_index.
// Returns an empty slice when none exist.
func (r *ChunkRepo) ListIDsBySource(ctx context.Context, projectID, sourcePath string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM chunks WHERE project_id = ? AND source_path = ? ORDER BY chunk_index",
		projectID, sourcePath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chunk ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

// ListSourcePaths returns the distinct source paths indexed for a project.
func (r *ChunkRepo) ListSourcePaths(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT source_path FROM chunks WHERE project_id = ? ORDER BY source_path",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query source paths: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan source path: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return paths, nil
}

// DeleteBySource removes all chunks for a source path. Deleting an absent
// path is not an error.
func (r *ChunkRepo) DeleteBySource(ctx context.Context, projectID, sourcePath string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE project_id = ? AND source_path = ?",
		projectID, sourcePath,
	)
	if err != nil {
		return fmt.Errorf("failed to delete chunks by source: %w", err)
	}
	return nil
}

// DeleteByProject removes all chunks for a project.
func (r *ChunkRepo) DeleteByProject(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM chunks WHERE project_id = ?", projectID)
	if err != nil {
		return fmt.Errorf("failed to delete chunks by project: %w", err)
	}
	return nil
}
