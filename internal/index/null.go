package index

import "context"

// NullStore is an IndexStore that indexes nothing. It keeps sync and
// retrieval code paths branch-free when indexing is disabled.
type NullStore struct{}

// NewNullStore creates a NullStore.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Upsert discards the document.
func (*NullStore) Upsert(ctx context.Context, projectID, sourcePath string, meta ChunkMeta, text string) error {
	return nil
}

// Delete is a no-op.
func (*NullStore) Delete(ctx context.Context, projectID, sourcePath string) error {
	return nil
}

// DeleteProject reports zero indexed documents.
func (*NullStore) DeleteProject(ctx context.Context, projectID string) (int, error) {
	return 0, nil
}

// Query returns no matches.
func (*NullStore) Query(ctx context.Context, projectID, queryText string, topK int, excludePaths []string) ([]Match, error) {
	return nil, nil
}
