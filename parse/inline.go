package parse

import (
	"html"
	"strings"

	"github.com/ahape/markterm"
)

// Inline parses span-level markdown within one block's text. The scan
// runs left to right; code spans take priority over emphasis, malformed
// constructs fall back to literal text, and adjacent literal runs are
// coalesced into a single Text node.
func Inline(text string) []markterm.Inline {
	return parseInline(text, false)
}

// parseInline does the work of Inline. noLinks disables link
// recognition while parsing a link's display text, which prevents
// nested links and unbounded recursion.
func parseInline(text string, noLinks bool) []markterm.Inline {
	var nodes []markterm.Inline
	var pending strings.Builder

	flush := func() {
		if pending.Len() > 0 {
			nodes = append(nodes, &markterm.Text{Value: html.UnescapeString(pending.String())})
			pending.Reset()
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '\n':
			flush()
			nodes = append(nodes, &markterm.LineBreak{})
			i++

		case c == '\\' && i+1 < len(text) && isEscapable(text[i+1]):
			pending.WriteByte(text[i+1])
			i += 2

		case c == '`':
			open := runLength(text[i:], '`')
			if end := findBacktickRun(text, i+open, open); end >= 0 {
				flush()
				nodes = append(nodes, &markterm.InlineCode{Value: trimCodeSpan(text[i+open : end])})
				i = end + open
			} else {
				// No matching closer: the backticks are literal.
				pending.WriteString(text[i : i+open])
				i += open
			}

		case c == '[' && !noLinks:
			if link, next, ok := parseLink(text, i); ok {
				flush()
				nodes = append(nodes, link)
				i = next
			} else {
				pending.WriteByte(c)
				i++
			}

		case c == '*' || c == '_':
			if literal, node, next, ok := parseEmphasis(text, i, noLinks); ok {
				pending.WriteString(literal)
				flush()
				nodes = append(nodes, node)
				i = next
			} else {
				run := runLength(text[i:], c)
				pending.WriteString(text[i : i+run])
				i += run
			}

		default:
			pending.WriteByte(c)
			i++
		}
	}
	flush()
	return nodes
}

// findBacktickRun returns the index of the next backtick run of exactly
// length n at or after from, or -1 when none exists.
func findBacktickRun(text string, from, n int) int {
	for i := from; i < len(text); i++ {
		if text[i] != '`' {
			continue
		}
		run := runLength(text[i:], '`')
		if run == n {
			return i
		}
		i += run - 1
	}
	return -1
}

// trimCodeSpan strips one space from each end when the span is padded
// on both sides and is not all whitespace, so `` `x` `` works.
func trimCodeSpan(code string) string {
	if len(code) >= 2 && code[0] == ' ' && code[len(code)-1] == ' ' &&
		strings.TrimSpace(code) != "" {
		return code[1 : len(code)-1]
	}
	return code
}

// parseLink recognizes [text](url) at position i. Anything malformed,
// such as a missing closing bracket or an empty target, is rejected so
// the caller renders the bracket literally.
func parseLink(text string, i int) (markterm.Inline, int, bool) {
	closeBracket := -1
	depth := 0
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '[':
			depth++
		case ']':
			if depth == 0 {
				closeBracket = j
			} else {
				depth--
			}
		}
		if closeBracket >= 0 {
			break
		}
	}
	if closeBracket < 0 || closeBracket+1 >= len(text) || text[closeBracket+1] != '(' {
		return nil, 0, false
	}

	closeParen := -1
	for j := closeBracket + 2; j < len(text); j++ {
		if text[j] == '\\' {
			j++
			continue
		}
		if text[j] == ')' {
			closeParen = j
			break
		}
	}
	if closeParen < 0 {
		return nil, 0, false
	}

	target := strings.TrimSpace(text[closeBracket+2 : closeParen])
	// Drop an optional quoted title; only the URL matters here.
	if space := strings.IndexAny(target, " \t"); space >= 0 {
		target = target[:space]
	}
	if target == "" {
		return nil, 0, false
	}

	return &markterm.Link{
		Content: parseInline(text[i+1:closeBracket], true),
		URL:     target,
	}, closeParen + 1, true
}

// parseEmphasis recognizes emphasis at a * or _ run. Three markers
// close as strong emphasis wrapping emphasis, two as strong, one as
// emphasis; the nearest closing run of at least the same length wins,
// and a longer closing run donates its surplus markers to the inner
// text (so **bold *nested*** resolves the nested emphasis). Opener
// markers beyond the matched length are returned as literal text;
// wholly unmatched runs stay literal.
func parseEmphasis(text string, i int, noLinks bool) (string, markterm.Inline, int, bool) {
	marker := text[i]
	run := runLength(text[i:], marker)
	if !canOpenEmphasis(text, i, run, marker) {
		return "", nil, 0, false
	}

	most := run
	if most > 3 {
		most = 3
	}
	for n := most; n >= 1; n-- {
		end := findEmphasisCloser(text, i+run, marker, n)
		if end < 0 {
			continue
		}
		closerRun := runLength(text[end:], marker)
		inner := parseInline(text[i+run:end+closerRun-n], noLinks)
		var node markterm.Inline
		switch n {
		case 3:
			node = &markterm.Strong{Content: []markterm.Inline{
				&markterm.Emphasis{Content: inner},
			}}
		case 2:
			node = &markterm.Strong{Content: inner}
		default:
			node = &markterm.Emphasis{Content: inner}
		}
		return text[i : i+run-n], node, end + closerRun, true
	}
	return "", nil, 0, false
}

// canOpenEmphasis rejects openers followed by whitespace and, for
// underscores, openers attached to a preceding word (snake_case stays
// literal).
func canOpenEmphasis(text string, i, run int, marker byte) bool {
	after := i + run
	if after >= len(text) || text[after] == ' ' || text[after] == '\t' {
		return false
	}
	if marker == '_' && i > 0 && isWordByte(text[i-1]) {
		return false
	}
	return true
}

// findEmphasisCloser finds the nearest valid closing run of at least n
// markers after from. Code spans are skipped wholesale; no emphasis
// resolution happens inside them.
func findEmphasisCloser(text string, from int, marker byte, n int) int {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '`':
			open := runLength(text[i:], '`')
			if end := findBacktickRun(text, i+open, open); end >= 0 {
				i = end + open - 1
			} else {
				i += open - 1
			}
		case marker:
			run := runLength(text[i:], marker)
			if run >= n && i > from && validCloserContext(text, i, run, marker) {
				return i
			}
			i += run - 1
		}
	}
	return -1
}

func validCloserContext(text string, i, run int, marker byte) bool {
	if text[i-1] == ' ' || text[i-1] == '\t' {
		return false
	}
	if marker == '_' {
		after := i + run
		if after < len(text) && isWordByte(text[after]) {
			return false
		}
	}
	return true
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// isEscapable reports whether a backslash before c removes its meaning.
func isEscapable(c byte) bool {
	return strings.IndexByte("\\`*_{}[]()#+-.!|>~\"'", c) >= 0
}
