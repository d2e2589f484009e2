package index

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkEmpty(t *testing.T) {
	c := NewChunker()
	if got := c.Chunk(""); got != nil {
		t.Fatalf("Chunk(\"\") = %v, want nil", got)
	}
	if got := c.Chunk("  \n\n  "); got != nil {
		t.Fatalf("Chunk(whitespace) = %v, want nil", got)
	}
}

func TestChunkSplitsOnHeadings(t *testing.T) {
	doc := "# Act One\n\n" + strings.Repeat("The detective paced the room. ", 5) +
		"\n\n# Act Two\n\n" + strings.Repeat("Rain hammered the windows. ", 5)

	chunks := NewChunker().Chunk(doc)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %q", len(chunks), chunks)
	}
	if !strings.Contains(chunks[0], "Act One") || !strings.Contains(chunks[0], "detective") {
		t.Errorf("first chunk missing heading or body: %q", chunks[0])
	}
	if !strings.Contains(chunks[1], "Act Two") {
		t.Errorf("second chunk missing heading: %q", chunks[1])
	}
}

func TestChunkMergesSmallSections(t *testing.T) {
	doc := "# Title\n\nShort.\n\n# Next\n\n" + strings.Repeat("A longer passage of prose here. ", 4)

	chunks := NewChunker().Chunk(doc)
	for _, chunk := range chunks {
		if utf8.RuneCountInString(chunk) < minChunkRunes && len(chunks) > 1 {
			t.Errorf("undersized chunk survived merging: %q", chunk)
		}
	}
}

func TestChunkSplitsOversized(t *testing.T) {
	doc := strings.Repeat("The clock ticked on. The night grew colder. ", 60)

	chunks := NewChunker().Chunk(doc)
	if len(chunks) < 2 {
		t.Fatalf("oversized document produced %d chunks, want >= 2", len(chunks))
	}
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > maxChunkRunes {
			t.Errorf("chunk %d has %d runes, max is %d", i, n, maxChunkRunes)
		}
	}
}

func TestChunkKeepsCodeBlockText(t *testing.T) {
	doc := "# Notes\n\n" + strings.Repeat("Prose around the fragment. ", 3) +
		"\n\n```\nINT. GALLERY - NIGHT\nThe alarm panel blinks.\n```\n"

	chunks := NewChunker().Chunk(doc)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	joined := strings.Join(chunks, "\n")
	if !strings.Contains(joined, "INT. GALLERY - NIGHT") || !strings.Contains(joined, "alarm panel") {
		t.Errorf("fenced block text lost: %q", joined)
	}
}

func TestChunkPlainTextNoHeadings(t *testing.T) {
	doc := strings.Repeat("A plain paragraph without any headings at all. ", 3)

	chunks := NewChunker().Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if !strings.Contains(chunks[0], "plain paragraph") {
		t.Errorf("chunk lost content: %q", chunks[0])
	}
}
