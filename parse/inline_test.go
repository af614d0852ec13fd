package parse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahape/markterm"
	"github.com/ahape/markterm/parse"
)

func TestInlineText(t *testing.T) {
	t.Parallel()

	t.Run("plain text is a single node", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("just some words")
		require.Len(t, nodes, 1)
		text := nodes[0].(*markterm.Text)
		assert.Equal(t, "just some words", text.Value)
	})

	t.Run("entities are decoded", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("a &amp; b &lt;c&gt;")
		require.Len(t, nodes, 1)
		assert.Equal(t, "a & b <c>", nodes[0].(*markterm.Text).Value)
	})

	t.Run("backslash escapes punctuation", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline(`\*not emphasis\*`)
		require.Len(t, nodes, 1)
		assert.Equal(t, "*not emphasis*", nodes[0].(*markterm.Text).Value)
	})

	t.Run("newline becomes a line break node", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("one\ntwo")
		require.Len(t, nodes, 3)
		_, ok := nodes[1].(*markterm.LineBreak)
		assert.True(t, ok)
	})
}

func TestInlineEmphasis(t *testing.T) {
	t.Parallel()

	t.Run("single asterisk is emphasis", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("*italic*")
		require.Len(t, nodes, 1)
		em := nodes[0].(*markterm.Emphasis)
		assert.Equal(t, "italic", plainText(em.Content))
	})

	t.Run("double asterisk is strong", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("**bold**")
		require.Len(t, nodes, 1)
		strong := nodes[0].(*markterm.Strong)
		assert.Equal(t, "bold", plainText(strong.Content))
	})

	t.Run("triple asterisk is strong wrapping emphasis", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("***both***")
		require.Len(t, nodes, 1)
		strong := nodes[0].(*markterm.Strong)
		require.Len(t, strong.Content, 1)
		em := strong.Content[0].(*markterm.Emphasis)
		assert.Equal(t, "both", plainText(em.Content))
	})

	t.Run("underscores work like asterisks", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("_italic_ and __bold__")
		require.Len(t, nodes, 3)
		_, ok := nodes[0].(*markterm.Emphasis)
		assert.True(t, ok)
		_, ok = nodes[2].(*markterm.Strong)
		assert.True(t, ok)
	})

	t.Run("intraword underscores stay literal", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("snake_case_name")
		require.Len(t, nodes, 1)
		assert.Equal(t, "snake_case_name", nodes[0].(*markterm.Text).Value)
	})

	t.Run("unmatched markers render literally", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("*unclosed")
		require.Len(t, nodes, 1)
		assert.Equal(t, "*unclosed", nodes[0].(*markterm.Text).Value)
	})

	t.Run("emphasis may nest inside strong", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("**bold *and italic***")
		require.Len(t, nodes, 1)
		strong, ok := nodes[0].(*markterm.Strong)
		require.True(t, ok)
		assert.Equal(t, "bold and italic", plainText(strong.Content))
	})

	t.Run("mixed emphasis in a sentence", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("a *b* c **d** e")
		assert.Equal(t, "a b c d e", plainText(nodes))
		require.Len(t, nodes, 5)
	})
}

func TestInlineCode(t *testing.T) {
	t.Parallel()

	t.Run("backtick span", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("`code`")
		require.Len(t, nodes, 1)
		code := nodes[0].(*markterm.InlineCode)
		assert.Equal(t, "code", code.Value)
	})

	t.Run("no emphasis inside code", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("`a *b* c`")
		require.Len(t, nodes, 1)
		code := nodes[0].(*markterm.InlineCode)
		assert.Equal(t, "a *b* c", code.Value)
	})

	t.Run("double backticks hold a single backtick", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("`` ` ``")
		require.Len(t, nodes, 1)
		code := nodes[0].(*markterm.InlineCode)
		assert.Equal(t, "`", code.Value)
	})

	t.Run("code span wins over surrounding emphasis", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("*a `*` b*")
		require.Len(t, nodes, 1)
		em, ok := nodes[0].(*markterm.Emphasis)
		require.True(t, ok)
		require.Len(t, em.Content, 3)
		code := em.Content[1].(*markterm.InlineCode)
		assert.Equal(t, "*", code.Value)
	})

	t.Run("unclosed backtick is literal", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("a `b")
		require.Len(t, nodes, 1)
		assert.Equal(t, "a `b", nodes[0].(*markterm.Text).Value)
	})
}

func TestInlineLinks(t *testing.T) {
	t.Parallel()

	t.Run("basic link", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("[click here](https://example.com)")
		require.Len(t, nodes, 1)
		link := nodes[0].(*markterm.Link)
		assert.Equal(t, "https://example.com", link.URL)
		assert.Equal(t, "click here", plainText(link.Content))
	})

	t.Run("link text may carry emphasis", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("[*em*](u)")
		link := nodes[0].(*markterm.Link)
		_, ok := link.Content[0].(*markterm.Emphasis)
		assert.True(t, ok)
	})

	t.Run("title after the url is dropped", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline(`[x](https://example.com "a title")`)
		link := nodes[0].(*markterm.Link)
		assert.Equal(t, "https://example.com", link.URL)
	})

	t.Run("missing closing paren is literal", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("[x](https://example.com")
		require.Len(t, nodes, 1)
		assert.Equal(t, "[x](https://example.com", nodes[0].(*markterm.Text).Value)
	})

	t.Run("empty url is literal", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("[x]()")
		require.Len(t, nodes, 1)
		assert.Equal(t, "[x]()", nodes[0].(*markterm.Text).Value)
	})

	t.Run("bare bracket is literal", func(t *testing.T) {
		t.Parallel()
		nodes := parse.Inline("a [ b")
		require.Len(t, nodes, 1)
		assert.Equal(t, "a [ b", nodes[0].(*markterm.Text).Value)
	})
}

// The parser never emits two adjacent Text nodes: literal runs coalesce.
func TestInlineCoalescing(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"plain",
		"*a* b *c*",
		"[x]( [y]( `z",
		"** * ` [ ]",
		"a \\* b \\` c",
		"&amp; &bogus; &#65;",
	}
	for _, src := range inputs {
		nodes := parse.Inline(src)
		for i := 1; i < len(nodes); i++ {
			_, prev := nodes[i-1].(*markterm.Text)
			_, cur := nodes[i].(*markterm.Text)
			assert.False(t, prev && cur, "adjacent Text nodes for %q", src)
		}
	}
}

func TestInlineTotality(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		strings.Repeat("*", 1000),
		strings.Repeat("[", 1000),
		strings.Repeat("`", 999),
		"\\",
		"\\\\",
		"[a[b[c]d]e](f)",
	}
	for _, src := range inputs {
		assert.NotPanics(t, func() { parse.Inline(src) }, "input %q", src)
	}
}
