// Command markterm renders a Markdown file to styled terminal output.
//
// Usage:
//
//	markterm FILE [flags]
//
// Flags:
//
//	-wrap WIDTH   Fixed width to wrap content (defaults to terminal width)
//	-theme NAME   Syntax highlighting theme for code blocks (default: monokai)
//
// All failures, from unreadable files to an invalid -wrap value, print
// a message to stderr and exit with code 2.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ahape/markterm"
	"github.com/ahape/markterm/input"
	"github.com/ahape/markterm/markdown"
)

const exitError = 2

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "markterm: %v\n", err)
		os.Exit(exitError)
	}
}

func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("markterm", flag.ContinueOnError)
	wrap := flags.Int("wrap", 0, "fixed width to wrap content (defaults to terminal width)")
	theme := flags.String("theme", markterm.DefaultThemeName, "syntax highlighting theme for code blocks")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: markterm FILE [-wrap WIDTH] [-theme NAME]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("expected exactly one file argument")
	}
	wrapSet := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "wrap" {
			wrapSet = true
		}
	})
	if wrapSet && *wrap <= 0 {
		return fmt.Errorf("-wrap must be a positive integer")
	}

	text, err := input.ReadFile(flags.Arg(0))
	if err != nil {
		return err
	}

	rendered, err := markdown.Render(text, *wrap, *theme)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Fprintln(out, rendered)
	}
	return nil
}
