package index

import (
	"context"
	"errors"
	"fmt"

	"storyforge/internal/apperr"
	"storyforge/internal/content"
	"storyforge/internal/contextutil"
)

// RebuildResult reports the outcome of a full project rebuild.
type RebuildResult struct {
	Success          bool
	DocumentsDeleted int
	DocumentsIndexed int
	DocumentsSkipped int
}

// SyncManager keeps the index consistent with the content store. It is the
// only component that mutates the index: every mutation runs under the
// project's write lock, and a rebuild holds it for the whole window.
type SyncManager struct {
	store   IndexStore
	content content.Store
	locks   *ProjectLocks
}

// NewSyncManager creates a SyncManager sharing locks with the Store.
func NewSyncManager(store IndexStore, contentStore content.Store, locks *ProjectLocks) *SyncManager {
	return &SyncManager{
		store:   store,
		content: contentStore,
		locks:   locks,
	}
}

// HandleUpdate re-indexes one document after a create or update
// notification. A document that vanished before we could read it is
// treated as deleted.
func (m *SyncManager) HandleUpdate(ctx context.Context, projectID, relPath string) error {
	lock := m.locks.Get(projectID)
	lock.Lock()
	defer lock.Unlock()

	text, err := m.content.Read(ctx, projectID, relPath)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return m.store.Delete(ctx, projectID, relPath)
		}
		return fmt.Errorf("failed to read %s: %w", relPath, err)
	}

	file := content.Classify(relPath)
	return m.store.Upsert(ctx, projectID, relPath, ChunkMeta{
		EntityType:    file.EntityType,
		CharacterName: file.CharacterName,
	}, text)
}

// HandleDelete removes a document's chunks after a delete notification.
func (m *SyncManager) HandleDelete(ctx context.Context, projectID, relPath string) error {
	lock := m.locks.Get(projectID)
	lock.Lock()
	defer lock.Unlock()

	return m.store.Delete(ctx, projectID, relPath)
}

// Rebuild drops every chunk of the project and re-indexes all files the
// content store currently lists. Per-file faults are downgraded to warnings
// and counted as skipped; only enumeration or the initial delete abort the
// rebuild.
func (m *SyncManager) Rebuild(ctx context.Context, projectID string) (RebuildResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	lock := m.locks.Get(projectID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.content.ListIndexable(ctx, projectID)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("failed to enumerate project files: %w", err)
	}

	deleted, err := m.store.DeleteProject(ctx, projectID)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("failed to clear project index: %w", err)
	}

	result := RebuildResult{Success: true, DocumentsDeleted: deleted}
	for _, file := range files {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := m.indexFile(ctx, projectID, file); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				logger.WarnContext(ctx, "file vanished during rebuild, skipping",
					"project_id", projectID, "source_path", file.RelPath)
			} else {
				logger.WarnContext(ctx, "failed to index file during rebuild, skipping",
					"project_id", projectID, "source_path", file.RelPath, "error", err)
			}
			result.DocumentsSkipped++
			continue
		}
		result.DocumentsIndexed++
	}

	logger.InfoContext(ctx, "rebuild completed",
		"project_id", projectID,
		"deleted", result.DocumentsDeleted,
		"indexed", result.DocumentsIndexed,
		"skipped", result.DocumentsSkipped)
	return result, nil
}

// indexFile reads and upserts one file, retrying once on a transient
// backend fault.
func (m *SyncManager) indexFile(ctx context.Context, projectID string, file content.File) error {
	text, err := m.content.Read(ctx, projectID, file.RelPath)
	if err != nil {
		return err
	}

	meta := ChunkMeta{EntityType: file.EntityType, CharacterName: file.CharacterName}
	err = m.store.Upsert(ctx, projectID, file.RelPath, meta, text)
	if err != nil && errors.Is(err, apperr.ErrIndexBackend) {
		err = m.store.Upsert(ctx, projectID, file.RelPath, meta, text)
	}
	return err
}
