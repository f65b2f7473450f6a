// Package shortcode recognises the double-bracket shortcodes embedded in
// markdown paragraphs, for example:
//
//	[[ embed url=https://www.youtube.com/watch?v=abc ]]
//
// Only the embed shortcode produces an entity. Other bracketed shortcodes are
// still recognised so their paragraphs become atomic blocks.
package shortcode

import (
	"fmt"
	"regexp"
	"strings"
)

// NameEmbed is the shortcode producing video embed entities.
const NameEmbed = "embed"

var (
	// embedPattern is the strict grammar: [[ embed url=<token> ]].
	embedPattern = regexp.MustCompile(`^\[\[\s(?:embed)\s(?:url=(\S+))\s\]\]`)
	// blockPattern is the loose grammar classifying a paragraph as atomic.
	blockPattern = regexp.MustCompile(`^\[\[\s\S+\s.*\S+\s\]\]`)
	// invocationPattern splits a bracketed shortcode into name and params.
	invocationPattern = regexp.MustCompile(`^\[\[\s*(\S+)(.*?)\s*\]\]`)
)

// Shortcode is a parsed [[ name key=value ... ]] invocation.
type Shortcode struct {
	Name   string
	Params map[string]string
}

// Embed is a parsed embed shortcode.
type Embed struct {
	URL string
}

// IsEmbed reports whether raw starts with a well-formed embed shortcode.
func IsEmbed(raw string) bool {
	return embedPattern.MatchString(raw)
}

// IsBlock reports whether raw starts with a bracketed shortcode of any name.
func IsBlock(raw string) bool {
	return blockPattern.MatchString(raw)
}

// ParseEmbed extracts the embed URL. Callers are expected to check IsEmbed
// first; text failing the grammar yields ErrMalformedEmbed.
func ParseEmbed(raw string) (Embed, error) {
	matches := embedPattern.FindStringSubmatch(raw)
	if len(matches) < 2 || matches[1] == "" {
		return Embed{}, fmt.Errorf("%w: %q", ErrMalformedEmbed, raw)
	}
	return Embed{URL: matches[1]}, nil
}

// Parse splits a bracketed shortcode into its name and key=value params.
// Positional values are stored as param1, param2, ...
func Parse(raw string) (Shortcode, bool) {
	matches := invocationPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if len(matches) < 3 {
		return Shortcode{}, false
	}
	return Shortcode{
		Name:   matches[1],
		Params: parseParams(strings.TrimSpace(matches[2])),
	}, true
}

func parseParams(raw string) map[string]string {
	params := map[string]string{}
	if raw == "" {
		return params
	}
	for _, part := range strings.Fields(raw) {
		key, value, ok := strings.Cut(part, "=")
		if ok && key != "" {
			params[key] = strings.Trim(value, `"`)
			continue
		}
		params[fmt.Sprintf("param%d", len(params)+1)] = strings.Trim(part, `"`)
	}
	return params
}
