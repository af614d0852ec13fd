// Package markterm defines the document model, styling primitives, and
// themes shared by the markdown parsing and terminal rendering packages.
package markterm

// Document is an ordered sequence of top-level blocks. It is immutable
// once parsed: parsers build it, renderers only read it.
type Document struct {
	Blocks []Block
}

// Block is a block-level markdown node. Each block owns its children;
// blocks are never shared between parents and carry no back-references.
type Block interface {
	block()
}

// Inline is a span-level node inside a block's text content.
type Inline interface {
	inline()
}

// Heading is an ATX or setext heading, level 1 through 6.
type Heading struct {
	Level   int
	Content []Inline
}

// Paragraph is a run of inline content wrapped to the render width.
type Paragraph struct {
	Content []Inline
}

// List is an ordered or unordered list. Start is the first item number
// of an ordered list; unordered lists have Start == 1.
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// ListItem holds the blocks of a single list item. Nested lists and
// quotes appear here as child blocks.
type ListItem struct {
	Blocks []Block
}

// BlockQuote holds the quoted blocks. Quotes nest by containing
// further BlockQuote children.
type BlockQuote struct {
	Blocks []Block
}

// CodeBlock is a fenced or indented code block. Text is the verbatim
// code without the fence lines; Language is the info string after the
// opening fence, empty when none was declared.
type CodeBlock struct {
	Language string
	Text     string
	Fenced   bool
}

// Alignment is a table column alignment taken from the separator row.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Table is a pipe table. Every row, header included, has exactly
// len(Alignments) cells: the parser pads short rows with empty cells
// and truncates long ones.
type Table struct {
	Alignments []Alignment
	Header     []TableCell
	Rows       [][]TableCell
}

// TableCell is the inline content of one table cell.
type TableCell struct {
	Content []Inline
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

func (*Heading) block()       {}
func (*Paragraph) block()     {}
func (*List) block()          {}
func (*BlockQuote) block()    {}
func (*CodeBlock) block()     {}
func (*Table) block()         {}
func (*ThematicBreak) block() {}

// Text is a literal text run. The value is already entity-decoded; no
// two Text nodes are ever adjacent in an inline sequence.
type Text struct {
	Value string
}

// Emphasis is *italic* content.
type Emphasis struct {
	Content []Inline
}

// Strong is **bold** content.
type Strong struct {
	Content []Inline
}

// InlineCode is a `code` span. Its value is verbatim: no inline
// constructs are resolved inside it.
type InlineCode struct {
	Value string
}

// Link is [display](url). Display content never contains nested links.
type Link struct {
	Content []Inline
	URL     string
}

// LineBreak is a hard line break inside a paragraph.
type LineBreak struct{}

func (*Text) inline()       {}
func (*Emphasis) inline()   {}
func (*Strong) inline()     {}
func (*InlineCode) inline() {}
func (*Link) inline()       {}
func (*LineBreak) inline()  {}
