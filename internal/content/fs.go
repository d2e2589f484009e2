package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"storyforge/internal/apperr"
)

// Project layout under the root:
//
//	<project>/plan.md
//	<project>/synopsis.md
//	<project>/chapters/<chapter>/scenes/<scene>.md
//	<project>/characters/<name>.md
const (
	planFile     = "plan.md"
	synopsisFile = "synopsis.md"
	chaptersDir  = "chapters"
	scenesDir    = "scenes"
	charsDir     = "characters"
)

// FSStore implements Store over a directory tree.
type FSStore struct {
	root string
}

// NewFSStore creates a filesystem content store rooted at root.
func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

func (s *FSStore) projectDir(projectID string) string {
	return filepath.Join(s.root, projectID)
}

// Read returns the text of one document, or apperr.ErrNotFound.
func (s *FSStore) Read(ctx context.Context, projectID, relPath string) (string, error) {
	abs := filepath.Join(s.projectDir(projectID), filepath.FromSlash(relPath))
	data, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		return "", apperr.NotFoundf("file %s in project %s", relPath, projectID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	return string(data), nil
}

// ListIndexable enumerates plan, synopsis, scene, and character files that
// currently exist in the project, in a stable order.
func (s *FSStore) ListIndexable(ctx context.Context, projectID string) ([]File, error) {
	dir := s.projectDir(projectID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, apperr.NotFoundf("project %s", projectID)
	}

	var files []File
	for _, name := range []string{planFile, synopsisFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			entity := EntityPlan
			if name == synopsisFile {
				entity = EntitySynopsis
			}
			files = append(files, File{RelPath: name, EntityType: entity})
		}
	}

	chapterIDs, err := listSubdirs(filepath.Join(dir, chaptersDir))
	if err != nil {
		return nil, err
	}
	for _, chapterID := range chapterIDs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		scenePaths, err := s.ListScenePaths(ctx, projectID, chapterID)
		if err != nil {
			return nil, err
		}
		for _, p := range scenePaths {
			files = append(files, File{RelPath: p, EntityType: EntityScene})
		}
	}

	characters, err := s.ListCharacters(ctx, projectID)
	if err != nil {
		return nil, err
	}
	files = append(files, characters...)

	return files, nil
}

// ListScenePaths returns a chapter's scene paths ordered by filename, which
// is the scene order. Returns apperr.ErrNotFound when the chapter is absent.
func (s *FSStore) ListScenePaths(ctx context.Context, projectID, chapterID string) ([]string, error) {
	dir := filepath.Join(s.projectDir(projectID), chaptersDir, chapterID, scenesDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		// A chapter may exist without a scenes directory yet.
		if _, statErr := os.Stat(filepath.Join(s.projectDir(projectID), chaptersDir, chapterID)); statErr == nil {
			return nil, nil
		}
		return nil, apperr.NotFoundf("chapter %s in project %s", chapterID, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		paths = append(paths, strings.Join([]string{chaptersDir, chapterID, scenesDir, entry.Name()}, "/"))
	}
	sort.Strings(paths)
	return paths, nil
}

// ListCharacters returns the project's character profile files.
func (s *FSStore) ListCharacters(ctx context.Context, projectID string) ([]File, error) {
	dir := filepath.Join(s.projectDir(projectID), charsDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		files = append(files, File{
			RelPath:       charsDir + "/" + entry.Name(),
			EntityType:    EntityCharacter,
			CharacterName: strings.TrimSuffix(entry.Name(), ".md"),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// ChapterExists reports whether the chapter directory exists.
func (s *FSStore) ChapterExists(ctx context.Context, projectID, chapterID string) (bool, error) {
	info, err := os.Stat(filepath.Join(s.projectDir(projectID), chaptersDir, chapterID))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check chapter: %w", err)
	}
	return info.IsDir(), nil
}

func listSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
