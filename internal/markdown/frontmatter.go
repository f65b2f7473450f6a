package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// ParseFrontMatter splits YAML or TOML front matter from the markdown body.
// Sources without front matter are returned unchanged with empty metadata.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return interfaces.FrontMatter{
		Title:  meta.Title,
		Slug:   meta.Slug,
		Tags:   append([]string(nil), meta.Tags...),
		Custom: cloneMap(meta.Custom),
	}, body, nil
}

type frontMatterEnvelope struct {
	Title  string         `yaml:"title" toml:"title"`
	Slug   string         `yaml:"slug" toml:"slug"`
	Tags   []string       `yaml:"tags" toml:"tags"`
	Custom map[string]any `yaml:",inline"`
}

func cloneMap(input map[string]any) map[string]any {
	if len(input) == 0 {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
