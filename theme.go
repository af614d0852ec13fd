package markterm

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultThemeName is the theme every unknown name falls back to.
const DefaultThemeName = "monokai"

// Style is a set of terminal attributes. Colors are either ANSI
// indices ("0"-"15") or hex values ("#a6e22e"); the empty string means
// the terminal default. The zero Style renders text unstyled.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
	Faint      bool
}

// IsZero reports whether the style applies no attributes at all.
func (s Style) IsZero() bool {
	return s == Style{}
}

// StyledSpan is a contiguous run of text carrying one style. Spans are
// the unit of output for the highlighter and the layout engine.
type StyledSpan struct {
	Text  string
	Style Style
}

// Theme maps node kinds and syntax-token categories to styles. Block
// decorations use ANSI color indices (0-15) so the user's terminal
// palette determines the actual RGB values; code tokens resolve through
// the chroma style selected by name. A Theme is immutable once resolved
// and safe to share across concurrent renders.
type Theme struct {
	Name string

	// Code styles fenced/indented code block tokens by category.
	Code *chroma.Style

	Heading     [6]Style // index 0 = level 1
	QuoteBar    Style
	ListMarker  Style
	Link        Style
	LinkURL     Style
	InlineCode  Style
	CodeLang    Style
	CodeGutter  Style
	Rule        Style
	TableBorder Style
	TableHeader Style
}

// ResolveTheme returns the theme for name. An unknown name silently
// resolves to the default theme, so ResolveTheme("no-such-theme") and
// ResolveTheme(DefaultThemeName) return the same value.
func ResolveTheme(name string) Theme {
	code, ok := styles.Registry[name]
	if !ok {
		name = DefaultThemeName
		code = styles.Registry[DefaultThemeName]
	}
	t := defaultDecorations()
	t.Name = name
	t.Code = code
	return t
}

// defaultDecorations returns the block-decoration mapping shared by
// every theme. Heading emphasis decreases with level.
func defaultDecorations() Theme {
	return Theme{
		Heading: [6]Style{
			{Foreground: "5", Bold: true, Underline: true},
			{Foreground: "5", Bold: true},
			{Foreground: "4", Bold: true},
			{Foreground: "4", Italic: true},
			{Italic: true},
			{Faint: true, Italic: true},
		},
		QuoteBar:    Style{Foreground: "3"},
		ListMarker:  Style{Foreground: "4"},
		Link:        Style{Foreground: "4", Underline: true},
		LinkURL:     Style{Foreground: "8", Faint: true},
		InlineCode:  Style{Foreground: "1", Background: "0"},
		CodeLang:    Style{Foreground: "8", Faint: true},
		CodeGutter:  Style{Foreground: "8", Faint: true},
		Rule:        Style{Foreground: "8", Faint: true},
		TableBorder: Style{Foreground: "8"},
		TableHeader: Style{Bold: true},
	}
}
