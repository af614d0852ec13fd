package parse

import (
	"strings"

	"github.com/ahape/markterm"
)

// parseTable recognizes a pipe table: a header row followed by a
// separator row of dashes and colons. Body rows are normalized to the
// header's cell count (short rows padded with empty cells, long rows
// truncated) so the renderer can assume rectangular input.
func parseTable(lines []string, start int) (*markterm.Table, int, bool) {
	if !looksLikeTable(lines, start) {
		return nil, start, false
	}

	headerCells := splitRow(lines[start])
	alignments := parseAlignments(splitRow(lines[start+1]))

	table := &markterm.Table{
		Alignments: alignments,
		Header:     toCells(normalizeRow(headerCells, len(alignments))),
	}

	i := start + 2
	for i < len(lines) {
		line := lines[i]
		if isBlank(line) || !strings.Contains(line, "|") {
			break
		}
		cells := normalizeRow(splitRow(line), len(alignments))
		table.Rows = append(table.Rows, toCells(cells))
		i++
	}
	return table, i, true
}

func looksLikeTable(lines []string, start int) bool {
	if start+1 >= len(lines) {
		return false
	}
	header := strings.TrimSpace(lines[start])
	if !strings.Contains(header, "|") {
		return false
	}
	separator := splitRow(lines[start+1])
	if len(separator) == 0 || len(separator) != len(splitRow(lines[start])) {
		return false
	}
	for _, part := range separator {
		if part == "" || strings.Trim(part, "-:") != "" || !strings.Contains(part, "-") {
			return false
		}
	}
	return true
}

func parseAlignments(separator []string) []markterm.Alignment {
	alignments := make([]markterm.Alignment, len(separator))
	for i, part := range separator {
		left := strings.HasPrefix(part, ":")
		right := strings.HasSuffix(part, ":")
		switch {
		case left && right:
			alignments[i] = markterm.AlignCenter
		case right:
			alignments[i] = markterm.AlignRight
		case left:
			alignments[i] = markterm.AlignLeft
		default:
			alignments[i] = markterm.AlignDefault
		}
	}
	return alignments
}

// splitRow splits a table row on unescaped pipes, trimming outer pipes
// and per-cell whitespace. "\|" yields a literal pipe inside a cell.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	var cells []string
	var cell strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cell.WriteByte('|')
			i++
		case line[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(line[i])
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}

func normalizeRow(cells []string, want int) []string {
	if len(cells) > want {
		return cells[:want]
	}
	for len(cells) < want {
		cells = append(cells, "")
	}
	return cells
}

func toCells(raw []string) []markterm.TableCell {
	cells := make([]markterm.TableCell, len(raw))
	for i, text := range raw {
		cells[i] = markterm.TableCell{Content: Inline(text)}
	}
	return cells
}
