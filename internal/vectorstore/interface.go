// Package vectorstore abstracts the vector search backend. The rest of the
// system only sees this interface; qdrant, in-memory, and no-op variants are
// interchangeable.
package vectorstore

import "context"

// Point is a vector with its payload metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult is one similarity-ranked hit.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// Filter scopes searches and deletes. ProjectID is always required for
// searches; ExcludePaths removes whole source paths before the result is
// truncated to k.
type Filter struct {
	ProjectID    string
	ExcludePaths []string
}

// VectorStore defines the backend operations.
type VectorStore interface {
	// Upsert inserts or replaces points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error
	// Search returns up to k hits matching the filter, best first.
	Search(ctx context.Context, collection string, query []float32, k int, filter Filter) ([]SearchResult, error)
	// Delete removes points by ID.
	Delete(ctx context.Context, collection string, ids []string) error
	// DeleteByProject removes every point belonging to a project.
	DeleteByProject(ctx context.Context, collection, projectID string) error
}
