// Package draft models the Draft.js raw content state produced by the
// converter: styled text blocks plus a document wide entity map.
package draft

import (
	"encoding/json"
	"unicode/utf16"
)

// Block styles understood by Draft.js.
const (
	StyleUnstyled          = "unstyled"
	StyleAtomic            = "atomic"
	StyleOrderedListItem   = "ordered-list-item"
	StyleUnorderedListItem = "unordered-list-item"
	StyleCodeBlock         = "code-block"
	StyleBlockquote        = "blockquote"
)

// Document is the converter output.
type Document struct {
	Blocks    []Block   `json:"blocks"`
	EntityMap EntityMap `json:"entityMap"`
}

// Block is a single paragraph, heading, list item or atomic unit.
type Block struct {
	Text              string        `json:"text"`
	Type              string        `json:"type"`
	Depth             int           `json:"depth"`
	InlineStyleRanges []StyleRange  `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange `json:"entityRanges"`
}

// StyleRange marks Length code units starting at Offset with Style.
type StyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// EntityRange attaches the entity stored under Key to a span of text.
type EntityRange struct {
	Key    string `json:"key"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// IsList reports whether style is one of the list item styles.
func IsList(style string) bool {
	return style == StyleOrderedListItem || style == StyleUnorderedListItem
}

// Len measures s in UTF-16 code units, the unit Draft.js uses for offsets.
func Len(s string) int {
	n := 0
	for _, r := range s {
		if w := utf16.RuneLen(r); w > 0 {
			n += w
			continue
		}
		n++
	}
	return n
}

// JSON renders the document as the Draft.js raw content state.
func (d *Document) JSON(indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}

// EntityKeys returns every key referenced by the document's blocks, in block
// order.
func (d *Document) EntityKeys() []string {
	var keys []string
	for _, block := range d.Blocks {
		for _, r := range block.EntityRanges {
			keys = append(keys, r.Key)
		}
	}
	return keys
}
