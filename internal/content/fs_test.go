package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"storyforge/internal/apperr"
)

func writeFile(t *testing.T, root string, rel string, text string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testProject(t *testing.T) *FSStore {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "p1/plan.md", "Write mystery")
	writeFile(t, root, "p1/synopsis.md", "A detective solves a theft")
	writeFile(t, root, "p1/chapters/ch1/scenes/001-opening.md", "Detective enters room.")
	writeFile(t, root, "p1/chapters/ch1/scenes/002-clue.md", "A glove on the floor.")
	writeFile(t, root, "p1/characters/marlowe.md", "Cynical, observant.")
	writeFile(t, root, "p1/chapters/ch1/notes.txt", "not indexable")
	return NewFSStore(root)
}

func TestRead(t *testing.T) {
	ctx := context.Background()
	store := testProject(t)

	text, err := store.Read(ctx, "p1", "plan.md")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if text != "Write mystery" {
		t.Errorf("Read() = %q", text)
	}

	if _, err := store.Read(ctx, "p1", "missing.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListIndexable(t *testing.T) {
	ctx := context.Background()
	store := testProject(t)

	files, err := store.ListIndexable(ctx, "p1")
	if err != nil {
		t.Fatalf("ListIndexable() error: %v", err)
	}

	byPath := make(map[string]File, len(files))
	for _, f := range files {
		byPath[f.RelPath] = f
	}

	want := map[string]string{
		"plan.md":                            EntityPlan,
		"synopsis.md":                        EntitySynopsis,
		"chapters/ch1/scenes/001-opening.md": EntityScene,
		"chapters/ch1/scenes/002-clue.md":    EntityScene,
		"characters/marlowe.md":              EntityCharacter,
	}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %+v", len(files), len(want), files)
	}
	for path, entity := range want {
		f, ok := byPath[path]
		if !ok {
			t.Errorf("missing file %s", path)
			continue
		}
		if f.EntityType != entity {
			t.Errorf("%s entity = %s, want %s", path, f.EntityType, entity)
		}
	}
	if byPath["characters/marlowe.md"].CharacterName != "marlowe" {
		t.Errorf("character name = %q, want marlowe", byPath["characters/marlowe.md"].CharacterName)
	}
}

func TestListIndexableMissingProject(t *testing.T) {
	store := NewFSStore(t.TempDir())
	if _, err := store.ListIndexable(context.Background(), "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListScenePaths(t *testing.T) {
	ctx := context.Background()
	store := testProject(t)

	paths, err := store.ListScenePaths(ctx, "p1", "ch1")
	if err != nil {
		t.Fatalf("ListScenePaths() error: %v", err)
	}
	if len(paths) != 2 || paths[0] != "chapters/ch1/scenes/001-opening.md" {
		t.Fatalf("ListScenePaths() = %v", paths)
	}

	if _, err := store.ListScenePaths(ctx, "p1", "ch9"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing chapter, got %v", err)
	}
}

func TestChapterExists(t *testing.T) {
	ctx := context.Background()
	store := testProject(t)

	ok, err := store.ChapterExists(ctx, "p1", "ch1")
	if err != nil || !ok {
		t.Fatalf("ChapterExists(ch1) = %v, %v; want true", ok, err)
	}
	ok, err = store.ChapterExists(ctx, "p1", "ch9")
	if err != nil || ok {
		t.Fatalf("ChapterExists(ch9) = %v, %v; want false", ok, err)
	}
}
