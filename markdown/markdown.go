// Package markdown is the single entry point the CLI renders through:
// parse markdown source, resolve a theme by name, and lay the document
// out as ANSI-styled text.
package markdown

import (
	"regexp"

	"github.com/ahape/markterm"
	"github.com/ahape/markterm/parse"
	"github.com/ahape/markterm/render"
)

// themeNamePattern accepts the names chroma registers (letters, digits,
// dots, dashes, underscores). Anything else is a caller error rather
// than an unknown-name fallback.
var themeNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]*$`)

// Render parses source and renders it at the given width with the
// named theme. A width of 0 means "use the terminal width, or 80 when
// that is unavailable"; a negative width is ErrInvalidWidth. Unknown
// theme names silently fall back to the default, but structurally
// invalid ones are ErrInvalidTheme. Malformed markdown never fails;
// it degrades to literal text.
func Render(source string, width int, themeName string) (string, error) {
	if width < 0 {
		return "", markterm.ErrInvalidWidth
	}
	if !themeNamePattern.MatchString(themeName) {
		return "", markterm.ErrInvalidTheme
	}
	if width == 0 {
		width = terminalWidth()
	}
	if source == "" {
		return "", nil
	}

	theme := markterm.ResolveTheme(themeName)
	return render.Render(parse.Document(source), width, theme)
}
