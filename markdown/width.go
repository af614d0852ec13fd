package markdown

import (
	"os"

	"golang.org/x/term"
)

// defaultWidth is used when the output is not a terminal, e.g. piped
// to a file.
const defaultWidth = 80

// terminalWidth returns the current terminal column count, or
// defaultWidth when stdout is not a terminal or the query fails.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
