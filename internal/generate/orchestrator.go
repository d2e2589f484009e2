// Package generate exposes the writing operations: question answering,
// scene drafting, rephrasing, chapter splitting, and index rebuilds. Each
// operation is a one-shot assemble, retrieve, prompt, generate, parse
// pipeline with no state carried between calls.
package generate

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks storyforge/internal/generate ContextLoader,Retriever,LLMClient,Rebuilder,ChapterChecker

import (
	"context"
	"fmt"
	"strings"

	"storyforge/internal/apperr"
	"storyforge/internal/assemble"
	"storyforge/internal/contextutil"
	"storyforge/internal/index"
	"storyforge/internal/parse"
)

// ContextLoader loads explicit context. Implemented by assemble.Assembler.
type ContextLoader interface {
	Load(ctx context.Context, projectID string, opts assemble.Options) (*assemble.LoadedContext, error)
}

// Retriever serves filtered similarity queries. Implemented by index.Store.
type Retriever interface {
	Query(ctx context.Context, projectID, queryText string, topK int, excludePaths []string) ([]index.Match, error)
}

// LLMClient completes a prompt. Implemented by llm.Client.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Rebuilder runs full index rebuilds. Implemented by index.SyncManager.
type Rebuilder interface {
	Rebuild(ctx context.Context, projectID string) (index.RebuildResult, error)
}

// ChapterChecker reports chapter existence. Implemented by content.FSStore.
type ChapterChecker interface {
	ChapterExists(ctx context.Context, projectID, chapterID string) (bool, error)
}

// Options tune retrieval depth and suggestion counts.
type Options struct {
	QueryTopK          int
	GenerationTopK     int
	SuggestionCount    int
	PreviousSceneCount int
}

// Orchestrator composes the loader, retriever, and model client. It never
// mutates the index; rebuilds delegate to the sync manager.
type Orchestrator struct {
	loader    ContextLoader
	retriever Retriever
	llm       LLMClient
	rebuilder Rebuilder
	chapters  ChapterChecker
	opts      Options
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(
	loader ContextLoader,
	retriever Retriever,
	llmClient LLMClient,
	rebuilder Rebuilder,
	chapters ChapterChecker,
	opts Options,
) *Orchestrator {
	return &Orchestrator{
		loader:    loader,
		retriever: retriever,
		llm:       llmClient,
		rebuilder: rebuilder,
		chapters:  chapters,
		opts:      opts,
	}
}

// Query answers a question about the project from its plan, synopsis, and
// retrieved chunks, attributing the chunks it used.
func (o *Orchestrator) Query(ctx context.Context, projectID, question string) (*Answer, error) {
	loaded, err := o.loader.Load(ctx, projectID, assemble.Options{})
	if err != nil {
		return nil, err
	}

	matches, err := o.retriever.Query(ctx, projectID, question, o.opts.QueryTopK, loaded.FilterPaths)
	if err != nil {
		return nil, err
	}

	reply, err := o.complete(ctx, buildQueryPrompt(loaded, matches, question))
	if err != nil {
		return nil, err
	}

	return &Answer{Text: reply, Sources: attributions(matches)}, nil
}

// GenerateSceneDraft drafts the next scene of a chapter from chapter-scoped
// context plus retrieved chunks. previousSceneCount falls back to the
// configured default when zero.
func (o *Orchestrator) GenerateSceneDraft(ctx context.Context, projectID, chapterID, promptSummary string, previousSceneCount int) (*SceneDraft, error) {
	if err := o.checkChapter(ctx, projectID, chapterID); err != nil {
		return nil, err
	}
	if previousSceneCount <= 0 {
		previousSceneCount = o.opts.PreviousSceneCount
	}

	loaded, err := o.loader.Load(ctx, projectID, assemble.Options{
		ChapterID:         chapterID,
		PreviousScenes:    previousSceneCount,
		IncludeCharacters: true,
	})
	if err != nil {
		return nil, err
	}

	matches, err := o.retriever.Query(ctx, projectID, promptSummary, o.opts.GenerationTopK, loaded.FilterPaths)
	if err != nil {
		return nil, err
	}

	reply, err := o.complete(ctx, buildSceneDraftPrompt(loaded, matches, promptSummary))
	if err != nil {
		return nil, err
	}

	title, body := parse.TitledDraft(reply)
	if body == "" {
		return nil, apperr.Wrap(apperr.ErrGeneration, nil, "model returned a draft with no content")
	}
	return &SceneDraft{Title: title, Content: body}, nil
}

// RephraseText produces the configured number of alternative phrasings for
// a selected passage, in model order.
func (o *Orchestrator) RephraseText(ctx context.Context, projectID, selectedText, contextBefore, contextAfter string) (*RephraseSuggestions, error) {
	logger := contextutil.LoggerFromContext(ctx)

	loaded, err := o.loader.Load(ctx, projectID, assemble.Options{})
	if err != nil {
		return nil, err
	}

	matches, err := o.retriever.Query(ctx, projectID, selectedText, o.opts.QueryTopK, loaded.FilterPaths)
	if err != nil {
		return nil, err
	}

	prompt := buildRephrasePrompt(loaded, matches, selectedText, contextBefore, contextAfter, o.opts.SuggestionCount)
	reply, err := o.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	suggestions := parse.NumberedList(reply, o.opts.SuggestionCount)
	if len(suggestions) == 0 {
		return nil, apperr.Wrap(apperr.ErrGeneration, nil, "model reply contained no suggestions")
	}
	if len(suggestions) != o.opts.SuggestionCount {
		logger.WarnContext(ctx, "suggestion count differs from requested",
			"requested", o.opts.SuggestionCount, "got", len(suggestions))
	}
	return &RephraseSuggestions{Suggestions: suggestions}, nil
}

// SplitChapterIntoScenes asks the model to segment chapterText into titled
// scenes, preserving the order the model returns.
func (o *Orchestrator) SplitChapterIntoScenes(ctx context.Context, projectID, chapterID, chapterText string) (*ProposedScenes, error) {
	if err := o.checkChapter(ctx, projectID, chapterID); err != nil {
		return nil, err
	}

	loaded, err := o.loader.Load(ctx, projectID, assemble.Options{})
	if err != nil {
		return nil, err
	}

	reply, err := o.complete(ctx, buildSplitPrompt(loaded, chapterText))
	if err != nil {
		return nil, err
	}

	scenes := parse.SceneList(ctx, reply)
	if len(scenes) == 0 {
		return nil, apperr.Wrap(apperr.ErrParse, nil, "no scene blocks found in model reply")
	}
	return &ProposedScenes{Scenes: scenes}, nil
}

// RebuildProjectIndex delegates to the sync manager and shapes its result
// into a report.
func (o *Orchestrator) RebuildProjectIndex(ctx context.Context, projectID string) (*RebuildReport, error) {
	result, err := o.rebuilder.Rebuild(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &RebuildReport{
		Success: result.Success,
		Message: fmt.Sprintf("deleted %d documents, indexed %d, skipped %d",
			result.DocumentsDeleted, result.DocumentsIndexed, result.DocumentsSkipped),
		DocumentsDeleted: result.DocumentsDeleted,
		DocumentsIndexed: result.DocumentsIndexed,
		DocumentsSkipped: result.DocumentsSkipped,
	}, nil
}

// checkChapter runs the typed existence check chapter-scoped operations
// require before doing any work.
func (o *Orchestrator) checkChapter(ctx context.Context, projectID, chapterID string) error {
	exists, err := o.chapters.ChapterExists(ctx, projectID, chapterID)
	if err != nil {
		return fmt.Errorf("failed to check chapter: %w", err)
	}
	if !exists {
		return apperr.NotFoundf("chapter %s in project %s", chapterID, projectID)
	}
	return nil
}

// complete calls the model and normalizes empty or self-reported failure
// replies to generation errors. Model faults arrive already wrapped by the
// client and propagate unchanged.
func (o *Orchestrator) complete(ctx context.Context, prompt string) (string, error) {
	reply, err := o.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", apperr.Wrap(apperr.ErrGeneration, nil, "model returned empty reply")
	}
	if hasErrorMarker(reply) {
		return "", apperr.Wrap(apperr.ErrGeneration, nil, "model reply signals failure")
	}
	return reply, nil
}

// hasErrorMarker reports whether a reply is an error message rather than a
// result. Some backends return these with a 200 status.
func hasErrorMarker(reply string) bool {
	lower := strings.ToLower(reply)
	return strings.HasPrefix(lower, "error:") || strings.HasPrefix(lower, "[error]")
}

func attributions(matches []index.Match) []SourceAttribution {
	sources := make([]SourceAttribution, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, SourceAttribution{
			SourcePath:    metaString(m.Meta, "source_path"),
			EntityType:    metaString(m.Meta, "entity_type"),
			CharacterName: metaString(m.Meta, "character_name"),
			Snippet:       snippet(m.Text),
			Score:         m.Score,
		})
	}
	return sources
}

func metaString(meta map[string]any, key string) string {
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}
