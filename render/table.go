package render

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/ahape/markterm"
)

// minColumnWidth is the floor a column can be squeezed to when the
// table is wider than the terminal.
const minColumnWidth = 3

func (r *renderer) table(t *markterm.Table, width int) []line {
	cols := len(t.Alignments)
	if cols == 0 {
		return nil
	}

	header := r.cellLines(t.Header, r.theme.TableHeader)
	body := make([][]line, len(t.Rows))
	for i, row := range t.Rows {
		body[i] = r.cellLines(row, markterm.Style{})
	}

	// Column width = widest cell in the column, header included, then
	// clipped to the render width by shrinking the widest column first.
	widths := make([]int, cols)
	for c := 0; c < cols; c++ {
		widths[c] = lineWidth(header[c])
		for _, row := range body {
			if w := lineWidth(row[c]); w > widths[c] {
				widths[c] = w
			}
		}
		if widths[c] < 1 {
			widths[c] = 1
		}
	}
	clipColumns(widths, width)

	out := []line{
		r.borderLine(widths, "┌", "┬", "┐"),
		r.rowLine(header, widths, t.Alignments),
		r.borderLine(widths, "├", "┼", "┤"),
	}
	for _, row := range body {
		out = append(out, r.rowLine(row, widths, t.Alignments))
	}
	return append(out, r.borderLine(widths, "└", "┴", "┘"))
}

// cellLines renders each cell's inline content as a single-line span
// sequence; hard breaks inside a cell become spaces.
func (r *renderer) cellLines(cells []markterm.TableCell, base markterm.Style) []line {
	out := make([]line, len(cells))
	for i, cell := range cells {
		spans := r.inlineSpans(cell.Content, base)
		flat := make(line, 0, len(spans))
		for _, span := range spans {
			span.Text = strings.ReplaceAll(span.Text, "\n", " ")
			flat = appendSpans(flat, line{span})
		}
		out[i] = flat
	}
	return out
}

// clipColumns shrinks columns until the drawn table (content plus "│ "
// and " │" chrome per column) fits the width. The widest column gives
// up space first; columns never drop below minColumnWidth, so a table
// that cannot fit is emitted over-wide rather than mangled.
func clipColumns(widths []int, width int) {
	total := func() int {
		t := 1 // trailing border
		for _, w := range widths {
			t += w + 3
		}
		return t
	}
	for total() > width {
		widest := 0
		for c := range widths {
			if widths[c] > widths[widest] {
				widest = c
			}
		}
		if widths[widest] <= minColumnWidth {
			return
		}
		widths[widest]--
	}
}

func (r *renderer) borderLine(widths []int, left, mid, right string) line {
	var b strings.Builder
	b.WriteString(left)
	for c, w := range widths {
		if c > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat("─", w+2))
	}
	b.WriteString(right)
	return line{{Text: b.String(), Style: r.theme.TableBorder}}
}

func (r *renderer) rowLine(cells []line, widths []int, alignments []markterm.Alignment) line {
	border := markterm.StyledSpan{Text: "│", Style: r.theme.TableBorder}
	out := line{border}
	for c, w := range widths {
		var cell line
		if c < len(cells) {
			cell = cells[c]
		}
		cell = truncateLine(cell, w)
		out = append(out, markterm.StyledSpan{Text: " "})
		out = append(out, alignCell(cell, w, alignments[c])...)
		out = append(out, markterm.StyledSpan{Text: " "}, border)
	}
	return out
}

func alignCell(cell line, width int, alignment markterm.Alignment) line {
	gap := width - lineWidth(cell)
	if gap <= 0 {
		return cell
	}
	var left, right int
	switch alignment {
	case markterm.AlignRight:
		left = gap
	case markterm.AlignCenter:
		left = gap / 2
		right = gap - left
	default:
		right = gap
	}
	out := make(line, 0, len(cell)+2)
	if left > 0 {
		out = append(out, markterm.StyledSpan{Text: strings.Repeat(" ", left)})
	}
	out = append(out, cell...)
	if right > 0 {
		out = append(out, markterm.StyledSpan{Text: strings.Repeat(" ", right)})
	}
	return out
}

// truncateLine cuts a cell down to width columns on grapheme-cluster
// boundaries, marking the cut with an ellipsis.
func truncateLine(cell line, width int) line {
	if lineWidth(cell) <= width {
		return cell
	}
	target := width - 1
	var out line
	used := 0
	ellipsisStyle := markterm.Style{}
	for _, span := range cell {
		var kept strings.Builder
		graphemes := uniseg.NewGraphemes(span.Text)
		for graphemes.Next() {
			w := graphemes.Width()
			if used+w > target {
				break
			}
			kept.WriteString(graphemes.Str())
			used += w
		}
		if kept.Len() > 0 {
			out = append(out, markterm.StyledSpan{Text: kept.String(), Style: span.Style})
			ellipsisStyle = span.Style
		}
		if used >= target {
			break
		}
	}
	return append(out, markterm.StyledSpan{Text: "…", Style: ellipsisStyle})
}
