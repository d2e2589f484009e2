package vectorstore

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-process VectorStore. It backs tests and small
// single-node deployments that don't want to run qdrant.
type MemoryStore struct {
	mu     sync.RWMutex
	points map[string]map[string]Point // collection -> point ID -> point
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{points: make(map[string]map[string]Point)}
}

// Upsert inserts or replaces points in the collection.
func (s *MemoryStore) Upsert(ctx context.Context, collection string, points []Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.points[collection]
	if coll == nil {
		coll = make(map[string]Point)
		s.points[collection] = coll
	}
	for _, p := range points {
		coll[p.ID] = p
	}
	return nil
}

// Search ranks all matching points by cosine similarity and returns the top
// k. Filtered points are removed before ranking, so exclusions never
// displace valid results.
func (s *MemoryStore) Search(ctx context.Context, collection string, query []float32, k int, filter Filter) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	excluded := make(map[string]struct{}, len(filter.ExcludePaths))
	for _, p := range filter.ExcludePaths {
		excluded[p] = struct{}{}
	}

	var results []SearchResult
	for _, p := range s.points[collection] {
		if projectID, _ := p.Meta["project_id"].(string); projectID != filter.ProjectID {
			continue
		}
		if sourcePath, _ := p.Meta["source_path"].(string); len(excluded) > 0 {
			if _, skip := excluded[sourcePath]; skip {
				continue
			}
		}
		results = append(results, SearchResult{
			PointID: p.ID,
			Score:   cosineSimilarity(query, p.Vec),
			Meta:    p.Meta,
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Delete removes points by ID.
func (s *MemoryStore) Delete(ctx context.Context, collection string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.points[collection]
	for _, id := range ids {
		delete(coll, id)
	}
	return nil
}

// DeleteByProject removes every point belonging to a project.
func (s *MemoryStore) DeleteByProject(ctx context.Context, collection, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.points[collection] {
		if pid, _ := p.Meta["project_id"].(string); pid == projectID {
			delete(s.points[collection], id)
		}
	}
	return nil
}

// Count returns the number of points in the collection.
func (s *MemoryStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points[collection])
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
