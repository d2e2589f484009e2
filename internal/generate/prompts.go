package generate

import (
	"fmt"
	"strings"

	"storyforge/internal/assemble"
	"storyforge/internal/index"
)

// writeProjectContext appends the explicit project context sections that are
// present. Sections for absent content are omitted entirely.
func writeProjectContext(b *strings.Builder, loaded *assemble.LoadedContext) {
	if loaded.Plan != "" {
		b.WriteString("## Project Plan\n")
		b.WriteString(loaded.Plan)
		b.WriteString("\n\n")
	}
	if loaded.Synopsis != "" {
		b.WriteString("## Synopsis\n")
		b.WriteString(loaded.Synopsis)
		b.WriteString("\n\n")
	}
}

func writeRetrieved(b *strings.Builder, matches []index.Match) {
	if len(matches) == 0 {
		return
	}
	b.WriteString("## Related Excerpts\n")
	for _, m := range matches {
		b.WriteString("- ")
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func buildQueryPrompt(loaded *assemble.LoadedContext, matches []index.Match, question string) string {
	var b strings.Builder
	b.WriteString("You are an assistant for a fiction writing project. Answer the question using only the project material below. If the material does not contain the answer, say so.\n\n")
	writeProjectContext(&b, loaded)
	writeRetrieved(&b, matches)
	b.WriteString("## Question\n")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")
	return b.String()
}

func buildSceneDraftPrompt(loaded *assemble.LoadedContext, matches []index.Match, promptSummary string) string {
	var b strings.Builder
	b.WriteString("You are a fiction co-writer. Draft the next scene of the chapter, staying consistent with the plan, synopsis, prior scenes, and character profiles below. Match the established tone and tense.\n\n")
	writeProjectContext(&b, loaded)
	if len(loaded.CharacterProfiles) > 0 {
		b.WriteString("## Characters\n")
		for _, profile := range loaded.CharacterProfiles {
			b.WriteString(profile)
			b.WriteString("\n\n")
		}
	}
	if len(loaded.PreviousScenes) > 0 {
		b.WriteString("## Previous Scenes\n")
		for _, scene := range loaded.PreviousScenes {
			b.WriteString(scene)
			b.WriteString("\n\n")
		}
	}
	writeRetrieved(&b, matches)
	b.WriteString("## Instructions\n")
	b.WriteString(promptSummary)
	b.WriteString("\n\nReply with a line \"Title: <scene title>\" followed by the scene text.\n")
	return b.String()
}

func buildRephrasePrompt(loaded *assemble.LoadedContext, matches []index.Match, selected, before, after string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a fiction line editor. Rewrite the selected passage in %d different ways, preserving its meaning and the project's voice.\n\n", count)
	writeProjectContext(&b, loaded)
	writeRetrieved(&b, matches)
	if before != "" {
		b.WriteString("## Text Before Selection\n")
		b.WriteString(before)
		b.WriteString("\n\n")
	}
	b.WriteString("## Selected Passage\n")
	b.WriteString(selected)
	b.WriteString("\n\n")
	if after != "" {
		b.WriteString("## Text After Selection\n")
		b.WriteString(after)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Reply with exactly %d alternatives as a numbered list (\"1.\", \"2.\", ...), one per line, and nothing else.\n", count)
	return b.String()
}

func buildSplitPrompt(loaded *assemble.LoadedContext, chapterText string) string {
	var b strings.Builder
	b.WriteString("You are a fiction editor. Segment the chapter text below into scenes. Keep the text in its original order and do not rewrite it.\n\n")
	writeProjectContext(&b, loaded)
	b.WriteString("## Chapter Text\n")
	b.WriteString(chapterText)
	b.WriteString("\n\nReply with each scene as a block starting with \"### Scene: <title>\" followed by that scene's text.\n")
	return b.String()
}

// snippet trims chunk text to a short attribution excerpt.
func snippet(text string) string {
	const maxRunes = 160
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "…"
}
