package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ahape/markterm"
)

// A line is a sequence of styled spans rendered side by side. A nil
// line is blank output.
type line []markterm.StyledSpan

// lineWidth is the display width of a line's text, ignoring styling.
func lineWidth(ln line) int {
	w := 0
	for _, span := range ln {
		w += runewidth.StringWidth(span.Text)
	}
	return w
}

// lineText is the unstyled text of a line.
func lineText(ln line) string {
	var b strings.Builder
	for _, span := range ln {
		b.WriteString(span.Text)
	}
	return b.String()
}

// word is a run of non-space spans that must stay on one line.
type word struct {
	spans line
	width int
	brk   bool // explicit line break instead of a word
}

// wrapSpans greedily word-wraps spans to the given width. Words wider
// than the width are emitted unbroken on their own line. "\n" span
// text forces a break.
func wrapSpans(spans []markterm.StyledSpan, width int) []line {
	if width < 1 {
		width = 1
	}
	words := splitWords(spans)

	var lines []line
	var current line
	used := 0
	flush := func() {
		lines = append(lines, current)
		current = nil
		used = 0
	}

	for _, w := range words {
		if w.brk {
			flush()
			continue
		}
		switch {
		case used == 0:
			current = appendSpans(current, w.spans)
			used = w.width
		case used+1+w.width <= width:
			current = appendSpans(current, line{{Text: " ", Style: jointStyle(current, w.spans)}})
			current = appendSpans(current, w.spans)
			used += 1 + w.width
		default:
			flush()
			current = appendSpans(current, w.spans)
			used = w.width
		}
	}
	if used > 0 || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// splitWords cuts spans into whitespace-separated words, keeping the
// per-character styling. A word whose halves carry different styles
// (e.g. "**bo**ld") stays one word of two spans.
func splitWords(spans []markterm.StyledSpan) []word {
	var words []word
	var current word
	flush := func() {
		if len(current.spans) > 0 {
			words = append(words, current)
			current = word{}
		}
	}

	for _, span := range spans {
		rest := span.Text
		for rest != "" {
			cut := strings.IndexAny(rest, " \n")
			if cut < 0 {
				current.spans = appendSpans(current.spans, line{{Text: rest, Style: span.Style}})
				current.width += runewidth.StringWidth(rest)
				break
			}
			if cut > 0 {
				chunk := rest[:cut]
				current.spans = appendSpans(current.spans, line{{Text: chunk, Style: span.Style}})
				current.width += runewidth.StringWidth(chunk)
			}
			flush()
			if rest[cut] == '\n' {
				words = append(words, word{brk: true})
			}
			rest = rest[cut+1:]
		}
	}
	flush()
	return words
}

// appendSpans appends spans to a line, merging adjacent spans that
// share a style so the serialized output does not thrash escapes.
func appendSpans(ln line, spans line) line {
	for _, span := range spans {
		if span.Text == "" {
			continue
		}
		if n := len(ln); n > 0 && ln[n-1].Style == span.Style {
			ln[n-1].Text += span.Text
			continue
		}
		ln = append(ln, span)
	}
	return ln
}

// jointStyle picks the style for an inter-word space: styled like its
// neighbors when both sides agree (so underlined headings stay solid),
// plain otherwise.
func jointStyle(current, next line) markterm.Style {
	if len(current) == 0 || len(next) == 0 {
		return markterm.Style{}
	}
	left := current[len(current)-1].Style
	if left == next[0].Style {
		return left
	}
	return markterm.Style{}
}
