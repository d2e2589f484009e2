package handlers

import (
	"context"

	"storyforge/internal/generate"
)

// Service is the core surface the generation endpoints call. Implemented by
// generate.Orchestrator.
type Service interface {
	Query(ctx context.Context, projectID, question string) (*generate.Answer, error)
	GenerateSceneDraft(ctx context.Context, projectID, chapterID, promptSummary string, previousSceneCount int) (*generate.SceneDraft, error)
	RephraseText(ctx context.Context, projectID, selectedText, contextBefore, contextAfter string) (*generate.RephraseSuggestions, error)
	SplitChapterIntoScenes(ctx context.Context, projectID, chapterID, chapterText string) (*generate.ProposedScenes, error)
	RebuildProjectIndex(ctx context.Context, projectID string) (*generate.RebuildReport, error)
}

// Syncer receives content mutation notifications. Implemented by
// index.SyncManager.
type Syncer interface {
	HandleUpdate(ctx context.Context, projectID, relPath string) error
	HandleDelete(ctx context.Context, projectID, relPath string) error
}
