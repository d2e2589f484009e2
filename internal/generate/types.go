package generate

import "storyforge/internal/parse"

// SourceAttribution identifies one retrieved chunk that informed a reply.
type SourceAttribution struct {
	SourcePath    string  `json:"source_path"`
	EntityType    string  `json:"entity_type"`
	CharacterName string  `json:"character_name,omitempty"`
	Snippet       string  `json:"snippet"`
	Score         float32 `json:"score"`
}

// Answer is the result of a question-answering query.
type Answer struct {
	Text    string              `json:"text"`
	Sources []SourceAttribution `json:"sources"`
}

// SceneDraft is a generated scene with its title.
type SceneDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RephraseSuggestions holds alternative phrasings in model order.
type RephraseSuggestions struct {
	Suggestions []string `json:"suggestions"`
}

// ProposedScenes is an ordered scene breakdown of a chapter.
type ProposedScenes struct {
	Scenes []parse.Scene `json:"scenes"`
}

// RebuildReport is the outcome of a full index rebuild.
type RebuildReport struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	DocumentsDeleted int    `json:"documents_deleted"`
	DocumentsIndexed int    `json:"documents_indexed"`
	DocumentsSkipped int    `json:"documents_skipped"`
}
