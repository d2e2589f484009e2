package index

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"storyforge/internal/storage"
	"storyforge/internal/vectorstore"
)

// stubEmbedder maps each text deterministically onto a small vector so
// identical texts land on identical embeddings.
type stubEmbedder struct {
	calls int
	fail  error
}

func (e *stubEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.fail != nil {
		return nil, e.fail
	}
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		var a, b float32
		for _, r := range text {
			a += float32(r % 13)
			b += float32(r % 7)
		}
		vecs[i] = []float32{a + 1, b + 1, float32(len(text))}
	}
	return vecs, nil
}

func testStore(t *testing.T) (*Store, *vectorstore.MemoryStore, *sql.DB) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("storage.New() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}

	backend := vectorstore.NewMemoryStore()
	store := NewStore(&stubEmbedder{}, backend, "chunks", storage.NewChunkRepo(db), NewProjectLocks())
	return store, backend, db
}

func sceneMeta() ChunkMeta { return ChunkMeta{EntityType: "scene"} }

func TestUpsertAndQuery(t *testing.T) {
	ctx := context.Background()
	store, _, _ := testStore(t)

	text := strings.Repeat("The detective studied the torn glove in silence. ", 3)
	if err := store.Upsert(ctx, "p1", "chapters/ch1/scenes/s1.md", sceneMeta(), text); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	matches, err := store.Query(ctx, "p1", "torn glove", 5, nil)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("Query() returned no matches")
	}
	if !strings.Contains(matches[0].Text, "torn glove") {
		t.Errorf("match text = %q", matches[0].Text)
	}
	if matches[0].Meta["source_path"] != "chapters/ch1/scenes/s1.md" {
		t.Errorf("match source_path = %v", matches[0].Meta["source_path"])
	}
}

func TestUpsertReplacesPriorChunks(t *testing.T) {
	ctx := context.Background()
	store, backend, _ := testStore(t)

	path := "synopsis.md"
	first := strings.Repeat("An heiress vanishes from a locked train car. ", 3)
	second := strings.Repeat("A forged painting surfaces at an estate sale. ", 3)

	if err := store.Upsert(ctx, "p1", path, ChunkMeta{EntityType: "synopsis"}, first); err != nil {
		t.Fatalf("first Upsert() error: %v", err)
	}
	if err := store.Upsert(ctx, "p1", path, ChunkMeta{EntityType: "synopsis"}, second); err != nil {
		t.Fatalf("second Upsert() error: %v", err)
	}

	matches, err := store.Query(ctx, "p1", "estate sale painting", 10, nil)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	for _, m := range matches {
		if strings.Contains(m.Text, "locked train car") {
			t.Errorf("stale chunk still queryable: %q", m.Text)
		}
	}

	// The backend must not accumulate superseded points.
	if got := backend.Count("chunks"); got != 1 {
		t.Errorf("backend holds %d points, want 1", got)
	}
}

func TestDeleteCompleteness(t *testing.T) {
	ctx := context.Background()
	store, _, _ := testStore(t)

	path := "plan.md"
	text := strings.Repeat("Outline the second act around the midpoint reversal. ", 3)
	if err := store.Upsert(ctx, "p1", path, ChunkMeta{EntityType: "plan"}, text); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if err := store.Delete(ctx, "p1", path); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	matches, err := store.Query(ctx, "p1", "midpoint reversal", 10, nil)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("chunks queryable after delete: %+v", matches)
	}

	// Deleting an already-absent path succeeds.
	if err := store.Delete(ctx, "p1", path); err != nil {
		t.Fatalf("repeat Delete() error: %v", err)
	}
}

func TestQueryProjectIsolation(t *testing.T) {
	ctx := context.Background()
	store, _, _ := testStore(t)

	textA := strings.Repeat("Project A is a noir mystery set in 1947 Los Angeles. ", 3)
	textB := strings.Repeat("Project B is a space opera aboard a generation ship. ", 3)
	if err := store.Upsert(ctx, "pA", "plan.md", ChunkMeta{EntityType: "plan"}, textA); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ctx, "pB", "plan.md", ChunkMeta{EntityType: "plan"}, textB); err != nil {
		t.Fatal(err)
	}

	matches, err := store.Query(ctx, "pA", "generation ship", 10, nil)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	for _, m := range matches {
		if m.Meta["project_id"] != "pA" {
			t.Errorf("chunk from project %v returned for pA", m.Meta["project_id"])
		}
	}
}

func TestQueryExcludesPaths(t *testing.T) {
	ctx := context.Background()
	store, _, _ := testStore(t)

	scene := strings.Repeat("Detective enters room. The floor creaks underfoot. ", 3)
	plan := strings.Repeat("Write mystery with a room-centric reveal sequence. ", 3)
	if err := store.Upsert(ctx, "p1", "chapters/ch1/scenes/s1.md", sceneMeta(), scene); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ctx, "p1", "plan.md", ChunkMeta{EntityType: "plan"}, plan); err != nil {
		t.Fatal(err)
	}

	matches, err := store.Query(ctx, "p1", "detective room", 10, []string{"chapters/ch1/scenes/s1.md"})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("exclusion must not hide other paths")
	}
	for _, m := range matches {
		if m.Meta["source_path"] == "chapters/ch1/scenes/s1.md" {
			t.Errorf("excluded path returned: %+v", m)
		}
	}
}

func TestDeleteProjectCountsDocuments(t *testing.T) {
	ctx := context.Background()
	store, _, _ := testStore(t)

	long := strings.Repeat("Enough text to form at least one chunk here. ", 3)
	for _, path := range []string{"plan.md", "synopsis.md", "characters/ada.md"} {
		if err := store.Upsert(ctx, "p1", path, ChunkMeta{EntityType: "plan"}, long); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := store.DeleteProject(ctx, "p1")
	if err != nil {
		t.Fatalf("DeleteProject() error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("DeleteProject() = %d documents, want 3", deleted)
	}

	deleted, err = store.DeleteProject(ctx, "p1")
	if err != nil || deleted != 0 {
		t.Errorf("second DeleteProject() = %d, %v; want 0, nil", deleted, err)
	}
}
