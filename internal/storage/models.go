package storage

import "time"

// ProjectRecord is a writing project known to the system.
type ProjectRecord struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// ChunkRecord is one embedded unit of text. Its ID doubles as the vector
// store point ID.
type ChunkRecord struct {
	ID            string
	ProjectID     string
	SourcePath    string // relative path within the project, e.g. "chapters/c1/scenes/s1.md"
	EntityType    string // "plan", "synopsis", "scene" or "character"
	CharacterName string // set only for character chunks
	ChunkIndex    int    // position within the source document, starts at 0
	Text          string
}
