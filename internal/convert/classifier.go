package convert

import (
	"regexp"

	"github.com/goliatone/go-mdraft/internal/draft"
	"github.com/goliatone/go-mdraft/internal/shortcode"
	"github.com/goliatone/go-mdraft/pkg/mdast"
)

// listIndent marks a list item nested one level under its parent.
var listIndent = regexp.MustCompile(`^\s{3,6}`)

// classify selects the block style for the first top level node of a parsed
// block and the list depth derived from the block source.
func classify(root *mdast.Node, styles Styles) (string, int) {
	node := root.FirstChild()
	if node == nil {
		return draft.StyleUnstyled, 0
	}

	style, ok := blockStyle(node, styles)
	if !ok {
		return draft.StyleUnstyled, 0
	}
	if draft.IsList(style) && listIndent.MatchString(root.Raw) {
		return style, 1
	}
	return style, 0
}

func blockStyle(node *mdast.Node, styles Styles) (string, bool) {
	switch {
	case node.Type == mdast.TypeList && node.Ordered:
		return draft.StyleOrderedListItem, true
	case node.Type == mdast.TypeHeader:
		return styles.Block(HeaderKey(node.Depth))
	case node.Type == mdast.TypeParagraph && isMediaParagraph(node):
		return draft.StyleAtomic, true
	case node.Type == mdast.TypeTable:
		return draft.StyleAtomic, true
	}
	return styles.Block(string(node.Type))
}

func isMediaParagraph(node *mdast.Node) bool {
	if first := node.FirstChild(); first != nil && first.Type == mdast.TypeImage {
		return true
	}
	return shortcode.IsBlock(node.Raw)
}
