package convert

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdraft/internal/draft"
	"github.com/goliatone/go-mdraft/pkg/mdast"
)

// InlineStyle maps an inline node type onto a Draft.js inline style. Symbol is
// the markdown delimiter producing it.
type InlineStyle struct {
	Type   string `json:"type"`
	Symbol string `json:"symbol"`
}

// StyleOverrides are caller supplied entries merged over the defaults for a
// single conversion.
type StyleOverrides struct {
	InlineStyles map[string]InlineStyle `json:"inlineStyles,omitempty"`
	BlockStyles  map[string]string      `json:"blockStyles,omitempty"`
}

// Validate rejects overrides that would emit empty style names.
func (o StyleOverrides) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.InlineStyles, validation.Each(validation.By(validInlineStyle))),
		validation.Field(&o.BlockStyles, validation.Each(validation.By(validBlockStyle))),
	)
}

func validInlineStyle(value any) error {
	style, ok := value.(InlineStyle)
	if !ok {
		return errors.New("must be an inline style")
	}
	if strings.TrimSpace(style.Type) == "" {
		return validation.NewError("mdraft.styles.inline_type_required", "inline style type is required")
	}
	return nil
}

func validBlockStyle(value any) error {
	style, _ := value.(string)
	if strings.TrimSpace(style) == "" {
		return validation.NewError("mdraft.styles.block_style_required", "block style is required")
	}
	return nil
}

// Styles is the effective, immutable style table for a conversion.
type Styles struct {
	inline map[mdast.NodeType]InlineStyle
	block  map[string]string
}

// DefaultInlineStyles returns a fresh copy of the built-in inline styles.
func DefaultInlineStyles() map[string]InlineStyle {
	return map[string]InlineStyle{
		string(mdast.TypeStrong):   {Type: "BOLD", Symbol: "__"},
		string(mdast.TypeEmphasis): {Type: "ITALIC", Symbol: "*"},
		string(mdast.TypeDelete):   {Type: "STRIKETHROUGH", Symbol: "~~"},
		string(mdast.TypeCode):     {Type: "CODE", Symbol: "`"},
	}
}

// DefaultBlockStyles returns a fresh copy of the built-in block styles.
func DefaultBlockStyles() map[string]string {
	return map[string]string{
		string(mdast.TypeList):       draft.StyleUnorderedListItem,
		"Header1":                    "header-one",
		"Header2":                    "header-two",
		"Header3":                    "header-three",
		"Header4":                    "header-four",
		"Header5":                    "header-five",
		"Header6":                    "header-six",
		string(mdast.TypeCodeBlock):  draft.StyleCodeBlock,
		string(mdast.TypeBlockQuote): draft.StyleBlockquote,
		string(mdast.TypeTable):      "table",
	}
}

// NewStyles merges overrides over fresh defaults.
func NewStyles(overrides StyleOverrides) Styles {
	inline := make(map[mdast.NodeType]InlineStyle)
	for key, style := range DefaultInlineStyles() {
		inline[mdast.NodeType(key)] = style
	}
	for key, style := range overrides.InlineStyles {
		inline[mdast.NodeType(key)] = style
	}

	block := DefaultBlockStyles()
	for key, style := range overrides.BlockStyles {
		block[key] = style
	}
	return Styles{inline: inline, block: block}
}

// Merge layers more overrides on top of s without mutating it.
func (s Styles) Merge(overrides StyleOverrides) Styles {
	if len(overrides.InlineStyles) == 0 && len(overrides.BlockStyles) == 0 {
		return s
	}
	inline := make(map[mdast.NodeType]InlineStyle, len(s.inline)+len(overrides.InlineStyles))
	for key, style := range s.inline {
		inline[key] = style
	}
	for key, style := range overrides.InlineStyles {
		inline[mdast.NodeType(key)] = style
	}
	block := make(map[string]string, len(s.block)+len(overrides.BlockStyles))
	for key, style := range s.block {
		block[key] = style
	}
	for key, style := range overrides.BlockStyles {
		block[key] = style
	}
	return Styles{inline: inline, block: block}
}

// Inline returns the inline style for a node type.
func (s Styles) Inline(t mdast.NodeType) (InlineStyle, bool) {
	style, ok := s.inline[t]
	return style, ok
}

// Block returns the block style registered under key.
func (s Styles) Block(key string) (string, bool) {
	style, ok := s.block[key]
	return style, ok && style != ""
}

// HeaderKey is the block style key for a heading level.
func HeaderKey(depth int) string {
	return fmt.Sprintf("%s%d", mdast.TypeHeader, depth)
}

// Snapshot exports the tables, used by the CLI to print effective styles.
func (s Styles) Snapshot() StyleOverrides {
	out := StyleOverrides{
		InlineStyles: make(map[string]InlineStyle, len(s.inline)),
		BlockStyles:  make(map[string]string, len(s.block)),
	}
	for key, style := range s.inline {
		out.InlineStyles[string(key)] = style
	}
	for key, style := range s.block {
		out.BlockStyles[key] = style
	}
	return out
}
