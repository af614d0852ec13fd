// Package parse turns markdown text into a markterm.Document. Parsing
// is total: any input, however malformed, produces a document. Broken
// constructs degrade to literal paragraph text instead of failing.
package parse

import (
	"strconv"
	"strings"

	"github.com/ahape/markterm"
)

// nestingLimit bounds container recursion (list in quote in list...).
// Input nested deeper degrades to a plain paragraph.
const nestingLimit = 64

// fenceIndentLimit is the maximum leading indent at which a line can
// still open or close a code fence.
const fenceIndentLimit = 3

// Document parses markdown text into a document tree. It never fails;
// the empty string yields a document with zero blocks.
func Document(text string) *markterm.Document {
	if text == "" {
		return &markterm.Document{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	return &markterm.Document{Blocks: parseBlocks(lines, 0)}
}

func parseBlocks(lines []string, depth int) []markterm.Block {
	if depth >= nestingLimit {
		text := joinParagraphLines(lines)
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []markterm.Block{&markterm.Paragraph{Content: Inline(text)}}
	}

	var blocks []markterm.Block
	i := 0
	for i < len(lines) {
		line := lines[i]
		if isBlank(line) {
			i++
			continue
		}

		indent := leadingSpaces(line)
		trimmed := strings.TrimLeft(line, " \t")

		if indent >= 4 {
			block, next := parseIndentedCode(lines, i)
			blocks = append(blocks, block)
			i = next
			continue
		}
		if tbl, next, ok := parseTable(lines, i); ok {
			blocks = append(blocks, tbl)
			i = next
			continue
		}
		if fence, ok := detectFence(trimmed); ok && indent <= fenceIndentLimit {
			block, next := parseFencedCode(lines, i, fence)
			blocks = append(blocks, block)
			i = next
			continue
		}
		if strings.HasPrefix(trimmed, ">") {
			block, next := parseBlockQuote(lines, i, depth)
			blocks = append(blocks, block)
			i = next
			continue
		}
		if level, text, ok := parseATXHeading(trimmed); ok {
			blocks = append(blocks, &markterm.Heading{Level: level, Content: Inline(text)})
			i++
			continue
		}
		if isThematicBreak(trimmed) {
			blocks = append(blocks, &markterm.ThematicBreak{})
			i++
			continue
		}
		if list, next, ok := parseList(lines, i, depth); ok {
			blocks = append(blocks, list)
			i = next
			continue
		}

		block, next := parseParagraph(lines, i)
		blocks = append(blocks, block)
		i = next
	}
	return blocks
}

// parseParagraph collects paragraph lines. A setext underline ends the
// collection and turns the whole paragraph into a heading, which takes
// precedence over reading a dash underline as a thematic break.
func parseParagraph(lines []string, start int) (markterm.Block, int) {
	var parts []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlank(line) || leadingSpaces(line) >= 4 {
			break
		}
		if level, ok := setextUnderlineLevel(line); ok && len(parts) > 0 {
			return &markterm.Heading{
				Level:   level,
				Content: Inline(joinParagraphLines(parts)),
			}, i + 1
		}
		if interruptsParagraph(lines, i) {
			break
		}
		parts = append(parts, line)
		i++
	}
	return &markterm.Paragraph{Content: Inline(joinParagraphLines(parts))}, i
}

// interruptsParagraph reports whether the line at index starts a block
// that cuts a paragraph short without a blank line in between.
func interruptsParagraph(lines []string, index int) bool {
	if index == 0 {
		return false
	}
	trimmed := strings.TrimLeft(lines[index], " \t")
	if trimmed == "" {
		return false
	}
	switch {
	case strings.HasPrefix(trimmed, "#"):
		_, _, ok := parseATXHeading(trimmed)
		return ok
	case strings.HasPrefix(trimmed, ">"):
		return true
	}
	if isThematicBreak(trimmed) {
		return true
	}
	if _, ok := detectFence(trimmed); ok {
		return true
	}
	if _, ok := parseListMarker(lines[index]); ok {
		return true
	}
	if looksLikeTable(lines, index) {
		return true
	}
	return false
}

func parseBlockQuote(lines []string, start, depth int) (*markterm.BlockQuote, int) {
	var inner []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlank(line) {
			// A blank line inside the quote is kept so the quoted
			// blocks separate; the quote ends at the next non-">" line.
			if i+1 < len(lines) && strings.HasPrefix(strings.TrimLeft(lines[i+1], " \t"), ">") {
				inner = append(inner, "")
				i++
				continue
			}
			break
		}
		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		stripped := strings.TrimPrefix(trimmed, ">")
		stripped = strings.TrimPrefix(stripped, " ")
		inner = append(inner, stripped)
		i++
	}
	return &markterm.BlockQuote{Blocks: parseBlocks(inner, depth+1)}, i
}

type fence struct {
	char   byte
	length int
	info   string
}

func detectFence(trimmed string) (fence, bool) {
	if trimmed == "" || (trimmed[0] != '`' && trimmed[0] != '~') {
		return fence{}, false
	}
	char := trimmed[0]
	length := runLength(trimmed, char)
	if length < 3 {
		return fence{}, false
	}
	info := strings.TrimSpace(trimmed[length:])
	// An info string containing a backtick would be ambiguous with an
	// inline code span; treat such a line as text.
	if char == '`' && strings.Contains(info, "`") {
		return fence{}, false
	}
	return fence{char: char, length: length, info: info}, true
}

func parseFencedCode(lines []string, start int, open fence) (*markterm.CodeBlock, int) {
	var content []string
	i := start + 1
	for i < len(lines) {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if leadingSpaces(lines[i]) <= fenceIndentLimit {
			if closing, ok := detectFence(trimmed); ok &&
				closing.char == open.char && closing.length >= open.length && closing.info == "" {
				i++
				break
			}
		}
		content = append(content, lines[i])
		i++
	}
	// An unterminated fence consumes to end of input.
	return &markterm.CodeBlock{
		Language: open.info,
		Text:     strings.Join(content, "\n"),
		Fenced:   true,
	}, i
}

func parseIndentedCode(lines []string, start int) (*markterm.CodeBlock, int) {
	var content []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlank(line) {
			content = append(content, "")
			i++
			continue
		}
		if leadingSpaces(line) < 4 {
			break
		}
		content = append(content, stripIndent(line, 4))
		i++
	}
	for len(content) > 0 && content[len(content)-1] == "" {
		content = content[:len(content)-1]
	}
	return &markterm.CodeBlock{Text: strings.Join(content, "\n")}, i
}

type listMarker struct {
	ordered bool
	number  int
	width   int // marker width in bytes, excluding trailing space
	indent  int
	content string
}

func parseList(lines []string, start, depth int) (*markterm.List, int, bool) {
	first, ok := parseListMarker(lines[start])
	if !ok {
		return nil, start, false
	}

	list := &markterm.List{Ordered: first.ordered, Start: 1}
	if first.ordered {
		list.Start = first.number
	}
	baseIndent := first.indent

	i := start
	for i < len(lines) {
		m, ok := parseListMarker(lines[i])
		if !ok || m.indent != baseIndent || m.ordered != list.Ordered {
			break
		}

		itemLines := []string{m.content}
		contentIndent := m.indent + m.width + 1
		i++
		for i < len(lines) {
			line := lines[i]
			if isBlank(line) {
				itemLines = append(itemLines, "")
				i++
				continue
			}
			if next, ok := parseListMarker(line); ok && next.indent <= baseIndent {
				break
			}
			if leadingSpaces(line) < contentIndent {
				break
			}
			itemLines = append(itemLines, stripIndent(line, contentIndent))
			i++
		}
		for len(itemLines) > 0 && itemLines[len(itemLines)-1] == "" {
			itemLines = itemLines[:len(itemLines)-1]
		}

		list.Items = append(list.Items, markterm.ListItem{
			Blocks: parseBlocks(itemLines, depth+1),
		})
	}
	return list, i, true
}

func parseListMarker(line string) (listMarker, bool) {
	if isBlank(line) {
		return listMarker{}, false
	}
	indent := leadingSpaces(line)
	trimmed := line[indent:]

	if trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+' {
		if len(trimmed) < 2 || (trimmed[1] != ' ' && trimmed[1] != '\t') {
			return listMarker{}, false
		}
		return listMarker{
			width:   1,
			indent:  indent,
			content: strings.TrimLeft(trimmed[2:], " \t"),
		}, true
	}

	j := 0
	for j < len(trimmed) && trimmed[j] >= '0' && trimmed[j] <= '9' {
		j++
	}
	if j == 0 || j > 9 || j >= len(trimmed) {
		return listMarker{}, false
	}
	if trimmed[j] != '.' && trimmed[j] != ')' {
		return listMarker{}, false
	}
	if j+1 >= len(trimmed) || (trimmed[j+1] != ' ' && trimmed[j+1] != '\t') {
		return listMarker{}, false
	}
	number, err := strconv.Atoi(trimmed[:j])
	if err != nil {
		return listMarker{}, false
	}
	return listMarker{
		ordered: true,
		number:  number,
		width:   j + 1,
		indent:  indent,
		content: strings.TrimLeft(trimmed[j+2:], " \t"),
	}, true
}

func parseATXHeading(trimmed string) (int, string, bool) {
	if !strings.HasPrefix(trimmed, "#") {
		return 0, "", false
	}
	level := runLength(trimmed, '#')
	if level > 6 {
		// Seven or more hashes is not a heading.
		return 0, "", false
	}
	rest := trimmed[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	text := strings.TrimSpace(rest)
	// Trailing closing hashes are decoration.
	text = strings.TrimRight(text, "#")
	text = strings.TrimRight(text, " \t")
	return level, text, true
}

// setextUnderlineLevel recognizes a setext heading underline: a line
// of only "=" (level 1) or only "-" (level 2).
func setextUnderlineLevel(line string) (int, bool) {
	underline := strings.TrimSpace(line)
	if underline == "" {
		return 0, false
	}
	switch {
	case runLength(underline, '=') == len(underline):
		return 1, true
	case runLength(underline, '-') == len(underline):
		return 2, true
	}
	return 0, false
}

func isThematicBreak(trimmed string) bool {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, trimmed)
	if len(compact) < 3 {
		return false
	}
	for _, char := range []byte{'-', '*', '_'} {
		if runLength(compact, char) == len(compact) {
			return true
		}
	}
	return false
}

// joinParagraphLines collapses paragraph lines into a single string:
// soft breaks become spaces, hard breaks (two trailing spaces or a
// trailing backslash) become newlines for the inline parser to pick up.
func joinParagraphLines(lines []string) string {
	var b strings.Builder
	hardPrev := false
	for idx, line := range lines {
		content, hard := trimParagraphLine(line)
		if idx > 0 {
			if hardPrev {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(strings.TrimLeft(content, " \t"))
		hardPrev = hard
	}
	return b.String()
}

func trimParagraphLine(line string) (string, bool) {
	trimmed := strings.TrimRight(line, " ")
	hard := len(line)-len(trimmed) >= 2
	if n := trailingBackslashes(trimmed); n%2 == 1 {
		hard = true
		trimmed = trimmed[:len(trimmed)-1]
	}
	return trimmed, hard
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// runLength counts how many times char repeats at the start of s.
func runLength(s string, char byte) int {
	n := 0
	for n < len(s) && s[n] == char {
		n++
	}
	return n
}

// leadingSpaces counts leading spaces, expanding tabs to a width of 4.
func leadingSpaces(line string) int {
	n := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}

// stripIndent removes up to width columns of leading whitespace.
func stripIndent(line string, width int) string {
	col := 0
	i := 0
	for i < len(line) && col < width {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += 4
		default:
			return line[i:]
		}
		i++
	}
	return line[i:]
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
