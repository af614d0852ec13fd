package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ahape/markterm"
)

// styler converts markterm styles to lipgloss and caches the result;
// rendering touches the same handful of styles thousands of times.
type styler struct {
	cache map[markterm.Style]lipgloss.Style
}

func newStyler() *styler {
	return &styler{cache: make(map[markterm.Style]lipgloss.Style)}
}

func (s *styler) render(span markterm.StyledSpan) string {
	if span.Style.IsZero() {
		return span.Text
	}
	return s.lipgloss(span.Style).Render(span.Text)
}

func (s *styler) lipgloss(style markterm.Style) lipgloss.Style {
	if cached, ok := s.cache[style]; ok {
		return cached
	}
	ls := lipgloss.NewStyle()
	if style.Foreground != "" {
		ls = ls.Foreground(lipgloss.Color(style.Foreground))
	}
	if style.Background != "" {
		ls = ls.Background(lipgloss.Color(style.Background))
	}
	ls = ls.Bold(style.Bold).
		Italic(style.Italic).
		Underline(style.Underline).
		Faint(style.Faint)
	s.cache[style] = ls
	return ls
}

// overlay merges the non-zero attributes of top onto base.
func overlay(base, top markterm.Style) markterm.Style {
	out := base
	if top.Foreground != "" {
		out.Foreground = top.Foreground
	}
	if top.Background != "" {
		out.Background = top.Background
	}
	out.Bold = out.Bold || top.Bold
	out.Italic = out.Italic || top.Italic
	out.Underline = out.Underline || top.Underline
	out.Faint = out.Faint || top.Faint
	return out
}
