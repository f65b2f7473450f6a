package convertcmd

import (
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdraft/internal/convert"
)

const (
	convertFileMessageType      = "mdraft.convert.file"
	convertDirectoryMessageType = "mdraft.convert.directory"
)

// ConvertFileCommand converts one markdown file into a content state JSON
// file.
type ConvertFileCommand struct {
	// Path is the markdown file to read.
	Path string `json:"path"`
	// Output is the JSON destination. Blank writes next to Path with a .json
	// extension; "-" writes to standard output.
	Output string `json:"output,omitempty"`
	Indent bool   `json:"indent,omitempty"`
	// StripFrontMatter removes YAML/TOML front matter before conversion.
	StripFrontMatter bool                   `json:"strip_front_matter,omitempty"`
	Overrides        convert.StyleOverrides `json:"overrides,omitempty"`
}

// Type implements command.Message.
func (ConvertFileCommand) Type() string { return convertFileMessageType }

// Validate requires a path and well formed style overrides.
func (cmd ConvertFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(notBlank("mdraft.convert.file.path_required", "path is required"))),
		validation.Field(&cmd.Overrides),
	)
}

// ConvertDirectoryCommand converts every markdown file below Directory.
type ConvertDirectoryCommand struct {
	Directory string `json:"directory"`
	// OutputDir mirrors the source tree; blank writes beside each source.
	OutputDir        string                 `json:"output_dir,omitempty"`
	Pattern          string                 `json:"pattern,omitempty"`
	Recursive        bool                   `json:"recursive,omitempty"`
	Indent           bool                   `json:"indent,omitempty"`
	StripFrontMatter bool                   `json:"strip_front_matter,omitempty"`
	Overrides        convert.StyleOverrides `json:"overrides,omitempty"`
}

// Type implements command.Message.
func (ConvertDirectoryCommand) Type() string { return convertDirectoryMessageType }

// Validate requires a directory and a valid glob pattern.
func (cmd ConvertDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank("mdraft.convert.directory.directory_required", "directory is required"))),
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern, _ := value.(string)
			if strings.TrimSpace(pattern) == "" {
				return nil
			}
			if _, err := path.Match(pattern, "sample.md"); err != nil {
				return validation.NewError("mdraft.convert.directory.pattern_invalid", "pattern is not a valid glob")
			}
			return nil
		})),
		validation.Field(&cmd.Overrides),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
