// Package assemble builds the explicit context handed to the language model
// and records which source paths it placed there.
package assemble


import (
	"context"
	"errors"
	"fmt"

	"storyforge/internal/apperr"
	"storyforge/internal/content"
	"storyforge/internal/contextutil"
)

// ProjectChecker reports whether a project is registered. Implemented by
// storage.ProjectRepo.
type ProjectChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// LoadedContext is the explicit context for one request. FilterPaths lists
// exactly the source paths whose full text was included, so retrieval can
// exclude them. Built fresh per request and never mutated afterwards.
type LoadedContext struct {
	Plan              string
	Synopsis          string
	PreviousScenes    []string
	CharacterProfiles []string
	FilterPaths       []string
}

// Options scope a load. A zero ChapterID means project-level context only.
type Options struct {
	ChapterID         string
	PreviousScenes    int
	IncludeCharacters bool
}

// Assembler loads explicit context from the content store.
type Assembler struct {
	projects ProjectChecker
	content  content.Store
}

// NewAssembler creates an Assembler.
func NewAssembler(projects ProjectChecker, contentStore content.Store) *Assembler {
	return &Assembler{projects: projects, content: contentStore}
}

// Load reads plan and synopsis (empty string when absent), and, when a
// chapter is given, the most recent prior scenes plus character profiles.
// It returns apperr.ErrNotFound only when the project itself is missing;
// absent optional content never fails a load.
func (a *Assembler) Load(ctx context.Context, projectID string, opts Options) (*LoadedContext, error) {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := a.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return nil, apperr.NotFoundf("project %s", projectID)
	}

	loaded := &LoadedContext{}

	if loaded.Plan, err = a.readOptional(ctx, projectID, "plan.md", loaded); err != nil {
		return nil, err
	}
	if loaded.Synopsis, err = a.readOptional(ctx, projectID, "synopsis.md", loaded); err != nil {
		return nil, err
	}

	if opts.ChapterID != "" && opts.PreviousScenes > 0 {
		scenePaths, err := a.content.ListScenePaths(ctx, projectID, opts.ChapterID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("failed to list scenes: %w", err)
		}
		if len(scenePaths) > opts.PreviousScenes {
			scenePaths = scenePaths[len(scenePaths)-opts.PreviousScenes:]
		}
		for _, path := range scenePaths {
			text, err := a.content.Read(ctx, projectID, path)
			if err != nil {
				logger.WarnContext(ctx, "scene vanished during load, skipping", "source_path", path)
				continue
			}
			loaded.PreviousScenes = append(loaded.PreviousScenes, text)
			loaded.FilterPaths = append(loaded.FilterPaths, path)
		}
	}

	if opts.IncludeCharacters {
		characters, err := a.content.ListCharacters(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to list characters: %w", err)
		}
		for _, file := range characters {
			text, err := a.content.Read(ctx, projectID, file.RelPath)
			if err != nil {
				logger.WarnContext(ctx, "character profile vanished during load, skipping", "source_path", file.RelPath)
				continue
			}
			loaded.CharacterProfiles = append(loaded.CharacterProfiles, text)
			loaded.FilterPaths = append(loaded.FilterPaths, file.RelPath)
		}
	}

	return loaded, nil
}

// readOptional reads a document, returning "" when it is absent and
// recording the path in FilterPaths when present. Faults other than absence
// propagate.
func (a *Assembler) readOptional(ctx context.Context, projectID, relPath string, loaded *LoadedContext) (string, error) {
	text, err := a.content.Read(ctx, projectID, relPath)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	loaded.FilterPaths = append(loaded.FilterPaths, relPath)
	return text, nil
}
