// Package render lays out a parsed document as ANSI-styled terminal
// text. Layout is computed on plain-text spans and styling is applied
// only at serialization, which keeps width arithmetic exact.
package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ahape/markterm"
	"github.com/ahape/markterm/highlight"
)

// Render renders a document to ANSI-escaped text at the given width.
// It is deterministic and total over parser output; the only error is
// a non-positive width, which is a caller contract violation.
func Render(doc *markterm.Document, width int, theme markterm.Theme) (string, error) {
	if width <= 0 {
		return "", markterm.ErrInvalidWidth
	}
	r := &renderer{theme: theme, styler: newStyler()}
	lines := r.blocks(doc.Blocks, width, 0)
	return r.serialize(lines), nil
}

type renderer struct {
	theme  markterm.Theme
	styler *styler
}

// blocks renders sibling blocks separated by exactly one blank line.
func (r *renderer) blocks(blocks []markterm.Block, width, depth int) []line {
	var out []line
	for _, block := range blocks {
		rendered := r.block(block, width, depth)
		if len(rendered) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, nil)
		}
		out = append(out, rendered...)
	}
	return out
}

// itemBlocks renders a list item's blocks. Unlike sibling blocks at
// the top level, a nested list follows its introducing paragraph
// directly, without a blank line, so tight lists stay tight.
func (r *renderer) itemBlocks(blocks []markterm.Block, width, depth int) []line {
	var out []line
	for _, block := range blocks {
		rendered := r.block(block, width, depth)
		if len(rendered) == 0 {
			continue
		}
		if _, nested := block.(*markterm.List); len(out) > 0 && !nested {
			out = append(out, nil)
		}
		out = append(out, rendered...)
	}
	return out
}

func (r *renderer) block(block markterm.Block, width, depth int) []line {
	switch b := block.(type) {
	case *markterm.Heading:
		spans := r.inlineSpans(b.Content, r.theme.Heading[b.Level-1])
		return wrapSpans(spans, width)

	case *markterm.Paragraph:
		return wrapSpans(r.inlineSpans(b.Content, markterm.Style{}), width)

	case *markterm.List:
		return r.list(b, width, depth)

	case *markterm.BlockQuote:
		return r.blockQuote(b, width, depth)

	case *markterm.CodeBlock:
		return r.codeBlock(b)

	case *markterm.Table:
		return r.table(b, width)

	case *markterm.ThematicBreak:
		return []line{{{Text: strings.Repeat("─", width), Style: r.theme.Rule}}}
	}
	return nil
}

// bulletMarker alternates the unordered marker by nesting depth.
func bulletMarker(depth int) string {
	if depth%2 == 0 {
		return "• "
	}
	return "- "
}

func (r *renderer) list(l *markterm.List, width, depth int) []line {
	// Ordered markers are sized to the widest item number so the
	// content column lines up.
	markerWidth := runewidth.StringWidth(bulletMarker(depth))
	if l.Ordered {
		markerWidth = len(strconv.Itoa(l.Start+len(l.Items)-1)) + 2
	}
	continuation := strings.Repeat(" ", markerWidth)

	var out []line
	for idx, item := range l.Items {
		marker := bulletMarker(depth)
		if l.Ordered {
			marker = strconv.Itoa(l.Start+idx) + ". "
		}
		marker += strings.Repeat(" ", markerWidth-runewidth.StringWidth(marker))

		inner := r.itemBlocks(item.Blocks, contentWidth(width-markerWidth), depth+1)
		if len(inner) == 0 {
			inner = []line{nil}
		}
		for j, ln := range inner {
			switch {
			case j == 0:
				out = append(out, prefixLine(ln, markterm.StyledSpan{Text: marker, Style: r.theme.ListMarker}))
			case len(ln) == 0:
				out = append(out, nil)
			default:
				out = append(out, prefixLine(ln, markterm.StyledSpan{Text: continuation}))
			}
		}
	}
	return out
}

func (r *renderer) blockQuote(q *markterm.BlockQuote, width, depth int) []line {
	inner := r.blocks(q.Blocks, contentWidth(width-2), depth)
	out := make([]line, 0, len(inner))
	for _, ln := range inner {
		if len(ln) == 0 {
			// Keep the bar on blank lines so the quote reads as one unit.
			out = append(out, line{{Text: "│", Style: r.theme.QuoteBar}})
			continue
		}
		out = append(out, prefixLine(ln, markterm.StyledSpan{Text: "│ ", Style: r.theme.QuoteBar}))
	}
	return out
}

// codeBlock renders code verbatim, one gutter-prefixed line per source
// line, never reflowed. The declared language picks the lexer; fenced
// blocks with a language also get a muted label line.
func (r *renderer) codeBlock(b *markterm.CodeBlock) []line {
	var out []line
	if b.Fenced && b.Language != "" {
		out = append(out, line{{Text: b.Language, Style: r.theme.CodeLang}})
	}
	gutter := markterm.StyledSpan{Text: "│ ", Style: r.theme.CodeGutter}
	for _, code := range splitSpanLines(highlight.Spans(b.Text, b.Language, r.theme.Code)) {
		out = append(out, prefixLine(code, gutter))
	}
	return out
}

// splitSpanLines splits highlighted spans on newlines into lines,
// preserving each span's style across the split.
func splitSpanLines(spans []markterm.StyledSpan) []line {
	lines := []line{nil}
	for _, span := range spans {
		parts := strings.Split(span.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = appendSpans(lines[last], line{{Text: part, Style: span.Style}})
		}
	}
	return lines
}

func prefixLine(ln line, prefix markterm.StyledSpan) line {
	return append(line{prefix}, ln...)
}

// contentWidth keeps nested content at least one column wide when the
// accumulated prefixes leave no room at all.
func contentWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}

func (r *renderer) serialize(lines []line) string {
	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, span := range ln {
			if span.Text == "" {
				continue
			}
			b.WriteString(r.styler.render(span))
		}
	}
	return b.String()
}
