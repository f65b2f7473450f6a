package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-mdraft/pkg/mdast"
)

func TestStylesMergeDoesNotMutate(t *testing.T) {
	base := NewStyles(StyleOverrides{})
	merged := base.Merge(StyleOverrides{
		InlineStyles: map[string]InlineStyle{"Strong": {Type: "HEAVY", Symbol: "**"}},
		BlockStyles:  map[string]string{"BlockQuote": "pull-quote"},
	})

	strong, ok := base.Inline(mdast.TypeStrong)
	require.True(t, ok)
	require.Equal(t, "BOLD", strong.Type)

	strong, ok = merged.Inline(mdast.TypeStrong)
	require.True(t, ok)
	require.Equal(t, "HEAVY", strong.Type)

	quote, _ := base.Block(string(mdast.TypeBlockQuote))
	require.Equal(t, "blockquote", quote)
	quote, _ = merged.Block(string(mdast.TypeBlockQuote))
	require.Equal(t, "pull-quote", quote)
}

func TestDefaultsAreFreshCopies(t *testing.T) {
	defaults := DefaultBlockStyles()
	defaults["Header1"] = "changed"
	require.Equal(t, "header-one", DefaultBlockStyles()["Header1"])

	inline := DefaultInlineStyles()
	delete(inline, "Code")
	_, ok := NewStyles(StyleOverrides{}).Inline(mdast.TypeCode)
	require.True(t, ok)
}

func TestStylesSnapshot(t *testing.T) {
	snapshot := NewStyles(StyleOverrides{}).Snapshot()
	require.Equal(t, InlineStyle{Type: "ITALIC", Symbol: "*"}, snapshot.InlineStyles["Emphasis"])
	require.Equal(t, "header-four", snapshot.BlockStyles[HeaderKey(4)])
	require.Len(t, snapshot.BlockStyles, 10)
}

func TestStyleOverridesValidate(t *testing.T) {
	require.NoError(t, StyleOverrides{}.Validate())
	require.NoError(t, StyleOverrides{
		InlineStyles: map[string]InlineStyle{"Strong": {Type: "HEAVY"}},
		BlockStyles:  map[string]string{"Header1": "title"},
	}.Validate())

	require.Error(t, StyleOverrides{
		InlineStyles: map[string]InlineStyle{"Strong": {Symbol: "**"}},
	}.Validate())
	require.Error(t, StyleOverrides{
		BlockStyles: map[string]string{"Header1": "  "},
	}.Validate())
}
