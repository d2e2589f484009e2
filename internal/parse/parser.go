// Package parse turns language-model free text into structured results.
package parse

import (
	"context"
	"regexp"
	"strings"

	"storyforge/internal/contextutil"
)

// Scene is one parsed scene block.
type Scene struct {
	Title   string
	Content string
}

// UntitledScene is the placeholder used when the model omits a title.
const UntitledScene = "Untitled Scene"

var (
	numberedLine = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)$`)
	sceneHeader  = regexp.MustCompile(`^###\s*Scene\s*(?:\d+)?\s*:?\s*(.*)$`)
)

// NumberedList extracts lines with an ordinal prefix ("1.", "2)", ...) in
// document order. The result length may differ from expectedCount; the
// caller decides whether that is an error.
func NumberedList(text string, expectedCount int) []string {
	items := make([]string, 0, expectedCount)
	for _, line := range strings.Split(text, "\n") {
		m := numberedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if item := strings.TrimSpace(m[1]); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// SceneList extracts ordered scene blocks from a reply structured as
// "### Scene: <title>" headers followed by content. A block with no title
// gets the placeholder; a block with no content is skipped with a warning.
func SceneList(ctx context.Context, text string) []Scene {
	logger := contextutil.LoggerFromContext(ctx)

	var scenes []Scene
	var current *Scene
	var body strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(body.String())
		body.Reset()
		if current.Content == "" {
			logger.WarnContext(ctx, "skipping scene block with no content", "title", current.Title)
		} else {
			scenes = append(scenes, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if m := sceneHeader.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			title := strings.TrimSpace(m[1])
			if title == "" {
				title = UntitledScene
			}
			current = &Scene{Title: title}
			continue
		}
		if current != nil {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	flush()

	return scenes
}

// TitledDraft splits a scene-draft reply into title and content. A leading
// "Title:" line names the draft; otherwise the whole reply is content and
// the title falls back to the placeholder.
func TitledDraft(text string) (title, content string) {
	trimmed := strings.TrimSpace(text)
	lines := strings.SplitN(trimmed, "\n", 2)

	first := strings.TrimSpace(lines[0])
	if rest, ok := strings.CutPrefix(first, "Title:"); ok {
		title = strings.TrimSpace(rest)
		if len(lines) > 1 {
			content = strings.TrimSpace(lines[1])
		}
	} else {
		content = trimmed
	}

	if title == "" {
		title = UntitledScene
	}
	return title, content
}
