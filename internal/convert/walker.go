package convert

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-mdraft/internal/draft"
	"github.com/goliatone/go-mdraft/internal/inlinehtml"
	"github.com/goliatone/go-mdraft/internal/shortcode"
	"github.com/goliatone/go-mdraft/pkg/mdast"
)

// DefaultMaxNesting bounds the inline walk recursion.
const DefaultMaxNesting = 64

// ErrNestingTooDeep is returned when a block nests deeper than the configured
// limit.
var ErrNestingTooDeep = errors.New("convert: markdown nesting too deep")

// placeholder stands in for media, embeds and tables in block text.
const placeholder = " "

// walkState accumulates the output of one block. The entity factory is shared
// across blocks; everything else is scoped to the block.
type walkState struct {
	styles   Styles
	matcher  *inlinehtml.Matcher
	entities *entityFactory
	maxDepth int

	text         strings.Builder
	length       int
	styleRanges  []draft.StyleRange
	entityRanges []draft.EntityRange
	markers      inlinehtml.Stack
}

func newWalkState(styles Styles, matcher *inlinehtml.Matcher, entities *entityFactory, maxDepth int) *walkState {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxNesting
	}
	return &walkState{
		styles:       styles,
		matcher:      matcher,
		entities:     entities,
		maxDepth:     maxDepth,
		styleRanges:  []draft.StyleRange{},
		entityRanges: []draft.EntityRange{},
	}
}

// walkRoot walks every top level node of a parsed block.
func (s *walkState) walkRoot(root *mdast.Node) error {
	for _, child := range root.Children {
		style, ok := s.styles.Inline(child.Type)
		if err := s.walk(child, inherited(style, ok), 1); err != nil {
			return err
		}
	}
	return nil
}

// walk visits node with the style inherited from its parent. An empty style
// means none.
func (s *walkState) walk(node *mdast.Node, style string, depth int) error {
	if node == nil {
		return nil
	}
	if depth > s.maxDepth {
		return fmt.Errorf("%w: limit %d", ErrNestingTooDeep, s.maxDepth)
	}

	embed := node.Type == mdast.TypeParagraph && shortcode.IsEmbed(node.Raw)

	switch node.Type {
	case mdast.TypeTable:
		s.entityRanges = append(s.entityRanges, s.entities.table(node))
		s.text.Reset()
		s.text.WriteString(placeholder)
		s.length = 1
		return nil
	case mdast.TypeHorizontalRule:
		s.appendText(node.Raw)
		return nil
	case mdast.TypeLink:
		return s.walkLink(node, style, depth)
	case mdast.TypeImage:
		s.entityRanges = append(s.entityRanges, s.entities.media(node, s.length))
	case mdast.TypeParagraph:
		if embed {
			parsed, err := shortcode.ParseEmbed(node.Raw)
			if err != nil {
				return err
			}
			s.entityRanges = append(s.entityRanges, s.entities.video(parsed.URL, s.length))
		}
	}

	if !embed && node.IsParent() {
		return s.walkChildren(node, style, depth)
	}
	return s.leaf(node, style, embed)
}

// walkChildren covers the descendants of node with the inherited style and
// hands node's own inline style down to them.
func (s *walkState) walkChildren(node *mdast.Node, style string, depth int) error {
	own, ok := s.styles.Inline(node.Type)
	next := inherited(own, ok)

	start := s.length
	at := len(s.styleRanges)
	for _, child := range node.Children {
		if err := s.walk(child, next, depth+1); err != nil {
			return err
		}
	}
	if style != "" && s.length > start {
		s.styleRanges = slices.Insert(s.styleRanges, at, draft.StyleRange{
			Offset: start,
			Length: s.length - start,
			Style:  style,
		})
	}
	return nil
}

// walkLink registers the LINK entity before its text so keys follow document
// order, then fixes up the range length once the children are rendered.
func (s *walkState) walkLink(node *mdast.Node, style string, depth int) error {
	index := len(s.entityRanges)
	s.entityRanges = append(s.entityRanges, s.entities.link(node.URL, s.length, 0))
	start := s.length

	if err := s.walkChildren(node, style, depth); err != nil {
		return err
	}

	if length := s.length - start; length > 0 {
		s.entityRanges[index].Length = length
		return nil
	}
	// empty link text still needs a visible anchor for the entity
	s.appendText(placeholder)
	s.entityRanges[index].Length = 1
	return nil
}

// leaf emits the text of a childless node, or updates the open marker stack
// for inline HTML.
func (s *walkState) leaf(node *mdast.Node, style string, embed bool) error {
	if node.Type == mdast.TypeHTML {
		if opened := s.matcher.Open(node.Value); len(opened) > 0 {
			for _, marker := range opened {
				s.markers.Push(marker)
			}
			return nil
		}
		if s.markers.Close(node.Value) {
			return nil
		}
	}

	value := node.Value
	if node.Type == mdast.TypeImage || embed {
		value = placeholder
	}

	length := draft.Len(value)
	if length == 0 {
		return nil
	}

	if style != "" {
		s.addStyle(length, style)
	}
	if own, ok := s.styles.Inline(node.Type); ok && own.Type != "" {
		s.addStyle(length, own.Type)
	}
	for _, marker := range s.markers.Styles() {
		s.addStyle(length, marker)
	}
	s.appendText(value)
	return nil
}

func (s *walkState) addStyle(length int, style string) {
	s.styleRanges = append(s.styleRanges, draft.StyleRange{
		Offset: s.length,
		Length: length,
		Style:  style,
	})
}

func (s *walkState) appendText(value string) {
	s.text.WriteString(value)
	s.length += draft.Len(value)
}

// block returns the accumulated block content.
func (s *walkState) block(style string, depth int) draft.Block {
	return draft.Block{
		Text:              s.text.String(),
		Type:              style,
		Depth:             depth,
		InlineStyleRanges: s.styleRanges,
		EntityRanges:      s.entityRanges,
	}
}

func inherited(style InlineStyle, ok bool) string {
	if !ok {
		return ""
	}
	return style.Type
}
