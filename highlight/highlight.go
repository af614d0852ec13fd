// Package highlight tokenizes code block text into styled spans using
// chroma lexers. It is total: every byte of the input appears in
// exactly one span, in order, so concatenating span texts always
// reproduces the input exactly.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/ahape/markterm"
)

// Spans highlights code declared as language through the given chroma
// style. An empty or unrecognized language, a tokenizer failure, or any
// tokenization that would not round-trip the input yields a single
// unstyled span instead.
func Spans(code, language string, style *chroma.Style) []markterm.StyledSpan {
	lexer := lookupLexer(language)
	if lexer == nil || style == nil {
		return plain(code)
	}

	iterator, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root", EnsureLF: false}, code)
	if err != nil {
		return plain(code)
	}
	tokens := iterator.Tokens()

	spans := make([]markterm.StyledSpan, 0, len(tokens))
	var total strings.Builder
	for _, token := range tokens {
		if token.Value == "" {
			continue
		}
		total.WriteString(token.Value)
		spans = append(spans, markterm.StyledSpan{
			Text:  token.Value,
			Style: tokenStyle(style, token.Type),
		})
	}
	if total.String() != code {
		// The lexer transformed the text; fall back to pass-through
		// so the round-trip invariant holds.
		return plain(code)
	}
	return spans
}

func plain(code string) []markterm.StyledSpan {
	return []markterm.StyledSpan{{Text: code}}
}

func lookupLexer(language string) chroma.Lexer {
	if language == "" {
		return nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		// The info string may be an extension rather than a name.
		lexer = lexers.Match("file." + language)
	}
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

// tokenStyle maps a chroma token category to terminal attributes.
func tokenStyle(style *chroma.Style, kind chroma.TokenType) markterm.Style {
	entry := style.Get(kind)
	var s markterm.Style
	if entry.Colour.IsSet() {
		s.Foreground = entry.Colour.String()
	}
	if entry.Background.IsSet() {
		s.Background = entry.Background.String()
	}
	s.Bold = entry.Bold == chroma.Yes
	s.Italic = entry.Italic == chroma.Yes
	s.Underline = entry.Underline == chroma.Yes
	return s
}
