package render

import (
	"github.com/ahape/markterm"
)

// inlineSpans flattens an inline tree into styled spans. Nested
// emphasis accumulates attributes onto the base style; a LineBreak
// becomes a "\n" span that the wrapper turns into a forced break.
func (r *renderer) inlineSpans(content []markterm.Inline, base markterm.Style) []markterm.StyledSpan {
	var spans []markterm.StyledSpan
	for _, node := range content {
		switch n := node.(type) {
		case *markterm.Text:
			spans = append(spans, markterm.StyledSpan{Text: n.Value, Style: base})

		case *markterm.Emphasis:
			style := base
			style.Italic = true
			spans = append(spans, r.inlineSpans(n.Content, style)...)

		case *markterm.Strong:
			style := base
			style.Bold = true
			spans = append(spans, r.inlineSpans(n.Content, style)...)

		case *markterm.InlineCode:
			spans = append(spans, markterm.StyledSpan{
				Text:  n.Value,
				Style: overlay(base, r.theme.InlineCode),
			})

		case *markterm.Link:
			spans = append(spans, r.inlineSpans(n.Content, overlay(base, r.theme.Link))...)
			spans = append(spans,
				markterm.StyledSpan{Text: " ", Style: base},
				markterm.StyledSpan{Text: "(" + n.URL + ")", Style: overlay(base, r.theme.LinkURL)},
			)

		case *markterm.LineBreak:
			spans = append(spans, markterm.StyledSpan{Text: "\n", Style: base})
		}
	}
	return spans
}
