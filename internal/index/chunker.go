package index

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	minChunkRunes = 50
	maxChunkRunes = 700 // targets ~450 tokens for a 512-token embedding model
)

// Chunker splits markdown documents into embeddable chunks along heading
// boundaries, then enforces size constraints.
type Chunker struct {
	md goldmark.Markdown
}

// NewChunker creates a markdown chunker.
func NewChunker() *Chunker {
	return &Chunker{md: goldmark.New()}
}

// Chunk returns the document's chunks in order. Empty or whitespace-only
// input yields no chunks.
func (c *Chunker) Chunk(doc string) []string {
	if strings.TrimSpace(doc) == "" {
		return nil
	}

	src := []byte(doc)
	root := c.md.Parser().Parse(text.NewReader(src))

	var sections []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			sections = append(sections, s)
		}
		cur.Reset()
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok {
			flush()
			cur.WriteString(strings.Repeat("#", heading.Level))
			cur.WriteString(" ")
			cur.WriteString(nodeText(heading, src))
			cur.WriteString("\n")
			continue
		}
		cur.WriteString(nodeText(n, src))
		cur.WriteString("\n\n")
	}
	flush()

	if len(sections) == 0 {
		sections = []string{strings.TrimSpace(doc)}
	}
	return applySizeConstraints(sections)
}

// nodeText collects the plain text of a block node and its children.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			// Separate sibling blocks (list items, nested paragraphs)
			// with line breaks.
			if node != n && node.Type() == ast.TypeBlock {
				b.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteString("\n")
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(src))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// applySizeConstraints merges undersized sections into their successor and
// splits oversized ones. Sizes are measured in runes.
func applySizeConstraints(sections []string) []string {
	var result []string
	i := 0
	for i < len(sections) {
		current := sections[i]

		for utf8.RuneCountInString(current) < minChunkRunes && i+1 < len(sections) {
			merged := current + "\n\n" + sections[i+1]
			if utf8.RuneCountInString(merged) > maxChunkRunes {
				break
			}
			current = merged
			i++
		}

		if utf8.RuneCountInString(current) > maxChunkRunes {
			result = append(result, splitSection(current)...)
		} else {
			result = append(result, current)
		}
		i++
	}
	return result
}

// splitSection breaks an oversized section, preferring paragraph, then
// line, then sentence boundaries before falling back to a hard split.
func splitSection(section string) []string {
	runes := []rune(section)
	var splits []string
	start := 0

	for start < len(runes) {
		end := start + maxChunkRunes
		if end >= len(runes) {
			splits = append(splits, string(runes[start:]))
			break
		}

		window := string(runes[start:end])
		cut := end
		if p := strings.LastIndex(window, "\n\n"); p > 0 {
			cut = start + utf8.RuneCountInString(window[:p+2])
		} else if p := strings.LastIndex(window, "\n"); p > 0 {
			cut = start + utf8.RuneCountInString(window[:p+1])
		} else if p := strings.LastIndex(window, ". "); p > 0 {
			cut = start + utf8.RuneCountInString(window[:p+2])
		}

		splits = append(splits, strings.TrimSpace(string(runes[start:cut])))
		start = cut
	}
	return splits
}
