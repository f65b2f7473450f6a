package interfaces

import "github.com/goliatone/go-mdraft/pkg/mdast"

// MarkdownParser turns a single markdown block into a syntax tree. The
// converter treats implementations as black boxes: they must be pure and
// return a root node whose Children are block level nodes.
type MarkdownParser interface {
	Parse(block string) (*mdast.Node, error)
}

// ParseOptions customises the parser backend. Option names stay readable for
// configuration unmarshalling and CLI flags.
type ParseOptions struct {
	// Extensions lists goldmark extension names (gfm, table, strikethrough,
	// linkify). An empty list selects the default set.
	Extensions []string
}

// FrontMatter models metadata extracted from the head of a markdown file.
type FrontMatter struct {
	Title  string         `yaml:"title" json:"title,omitempty"`
	Slug   string         `yaml:"slug" json:"slug,omitempty"`
	Tags   []string       `yaml:"tags" json:"tags,omitempty"`
	Custom map[string]any `yaml:",inline" json:"custom,omitempty"`
}
