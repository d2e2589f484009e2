// Package content reads per-project documents (plan, synopsis, scenes,
// character profiles) from their on-disk layout.
package content

import (
	"context"
	"strings"
)

// Entity types assigned to indexable files.
const (
	EntityPlan      = "plan"
	EntitySynopsis  = "synopsis"
	EntityScene     = "scene"
	EntityCharacter = "character"
)

// File describes one indexable document within a project.
type File struct {
	RelPath       string // relative to the project root, forward slashes
	EntityType    string
	CharacterName string // set only for character files
}

// Store is the content-store contract consumed by the index and assembler
// layers. Implementations report absence via apperr.ErrNotFound.
type Store interface {
	// Read returns the text of one document.
	Read(ctx context.Context, projectID, relPath string) (string, error)
	// ListIndexable enumerates every indexable file in the project.
	ListIndexable(ctx context.Context, projectID string) ([]File, error)
	// ListScenePaths returns a chapter's scene paths in scene order.
	ListScenePaths(ctx context.Context, projectID, chapterID string) ([]string, error)
	// ListCharacters returns the project's character profile files.
	ListCharacters(ctx context.Context, projectID string) ([]File, error)
	// ChapterExists reports whether the chapter exists in the project.
	ChapterExists(ctx context.Context, projectID, chapterID string) (bool, error)
}

// Classify derives a File description from a relative path. Mutation
// notifications carry only the path; entity type and character name follow
// from the layout.
func Classify(relPath string) File {
	f := File{RelPath: relPath}
	switch {
	case relPath == "plan.md":
		f.EntityType = EntityPlan
	case relPath == "synopsis.md":
		f.EntityType = EntitySynopsis
	case strings.HasPrefix(relPath, "characters/"):
		f.EntityType = EntityCharacter
		name := strings.TrimPrefix(relPath, "characters/")
		f.CharacterName = strings.TrimSuffix(name, ".md")
	default:
		f.EntityType = EntityScene
	}
	return f
}
