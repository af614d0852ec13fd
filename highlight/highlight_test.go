package highlight_test

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahape/markterm"
	"github.com/ahape/markterm/highlight"
)

func concat(spans []markterm.StyledSpan) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.Text)
	}
	return b.String()
}

func TestSpans(t *testing.T) {
	t.Parallel()

	style := styles.Get("monokai")

	t.Run("unknown language is a single unstyled span", func(t *testing.T) {
		t.Parallel()
		spans := highlight.Spans("some code", "nosuchlanguage", style)
		require.Len(t, spans, 1)
		assert.Equal(t, "some code", spans[0].Text)
		assert.True(t, spans[0].Style.IsZero())
	})

	t.Run("empty language is a single unstyled span", func(t *testing.T) {
		t.Parallel()
		spans := highlight.Spans("anything at all", "", style)
		require.Len(t, spans, 1)
		assert.True(t, spans[0].Style.IsZero())
	})

	t.Run("nil style is a single unstyled span", func(t *testing.T) {
		t.Parallel()
		spans := highlight.Spans("x = 1", "python", nil)
		require.Len(t, spans, 1)
	})

	t.Run("known language styles keywords", func(t *testing.T) {
		t.Parallel()
		spans := highlight.Spans("func main() {}", "go", style)
		require.Greater(t, len(spans), 1)
		styled := false
		for _, span := range spans {
			if span.Text == "func" && !span.Style.IsZero() {
				styled = true
			}
		}
		assert.True(t, styled, "expected a styled func keyword, got %+v", spans)
	})

	t.Run("language may be given as a file extension", func(t *testing.T) {
		t.Parallel()
		spans := highlight.Spans("x = 1", "py", style)
		assert.Equal(t, "x = 1", concat(spans))
	})
}

// Concatenating span texts reproduces the input exactly, for any
// language, known or not.
func TestSpansRoundTrip(t *testing.T) {
	t.Parallel()

	style := styles.Get("monokai")
	codes := []string{
		"",
		"func main() {\n\tfmt.Println(\"hi\")\n}\n",
		"def f(x):\n    return x * 2\n",
		"SELECT * FROM t WHERE a = 'b';",
		"no particular language here",
		"{\"json\": [1, 2, null]}",
		"line with trailing spaces   \nand\ttabs\n",
		"unicode: héllo wörld — ≤ ≥\n",
	}
	languages := []string{"", "go", "python", "sql", "json", "nosuchlanguage", "markdown"}

	for _, code := range codes {
		for _, lang := range languages {
			spans := highlight.Spans(code, lang, style)
			assert.Equal(t, code, concat(spans), "lang %q code %q", lang, code)
		}
	}
}
