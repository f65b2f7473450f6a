// Package runtimeconfig holds the converter configuration shared by the root
// package, the command handlers and the CLI.
package runtimeconfig

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-mdraft/internal/markdown"
)

var (
	ErrParserExtensionUnknown = errors.New("mdraft config: parser extension is not supported")
	ErrMaxNestingInvalid      = errors.New("mdraft config: max nesting must be zero or positive")
	ErrLoggingProviderUnknown = errors.New("mdraft config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("mdraft config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("mdraft config: logging format is invalid")
	ErrBlockStyleEmpty        = errors.New("mdraft config: block style override must not be empty")
	ErrInlineStyleEmpty       = errors.New("mdraft config: inline style override must declare a type")
	ErrOutputPatternInvalid   = errors.New("mdraft config: output pattern is invalid")
)

// Config aggregates converter settings. Zero values fall back to the
// defaults applied by DefaultConfig.
type Config struct {
	Styles      StylesConfig      `json:"styles" toml:"styles"`
	Parser      ParserConfig      `json:"parser" toml:"parser"`
	FrontMatter FrontMatterConfig `json:"frontMatter" toml:"front_matter"`
	Limits      LimitsConfig      `json:"limits" toml:"limits"`
	Logging     LoggingConfig     `json:"logging" toml:"logging"`
	Validation  ValidationConfig  `json:"validation" toml:"validation"`
	Output      OutputConfig      `json:"output" toml:"output"`
}

// InlineStyleConfig maps a markdown inline node onto a Draft.js style.
type InlineStyleConfig struct {
	Type   string `json:"type" toml:"type"`
	Symbol string `json:"symbol" toml:"symbol"`
}

// StylesConfig holds style overrides merged over the built-in tables.
type StylesConfig struct {
	InlineStyles map[string]InlineStyleConfig `json:"inlineStyles,omitempty" toml:"inline_styles,omitempty"`
	BlockStyles  map[string]string            `json:"blockStyles,omitempty" toml:"block_styles,omitempty"`
}

// ParserConfig selects goldmark extensions.
type ParserConfig struct {
	Extensions []string `json:"extensions,omitempty" toml:"extensions,omitempty"`
}

// FrontMatterConfig controls front matter handling for file based commands.
type FrontMatterConfig struct {
	Strip bool `json:"strip" toml:"strip"`
}

// LimitsConfig bounds conversion work.
type LimitsConfig struct {
	MaxNesting int `json:"maxNesting" toml:"max_nesting"`
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Provider  string   `json:"provider" toml:"provider"`
	Level     string   `json:"level" toml:"level"`
	Format    string   `json:"format" toml:"format"`
	AddSource bool     `json:"addSource" toml:"add_source"`
	Focus     []string `json:"focus,omitempty" toml:"focus,omitempty"`
}

// ValidationConfig toggles JSON schema checks on produced documents.
type ValidationConfig struct {
	Schema bool `json:"schema" toml:"schema"`
}

// OutputConfig controls how documents are written by file commands.
type OutputConfig struct {
	Indent    bool   `json:"indent" toml:"indent"`
	Pattern   string `json:"pattern" toml:"pattern"`
	Recursive bool   `json:"recursive" toml:"recursive"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Styles: StylesConfig{
			InlineStyles: map[string]InlineStyleConfig{},
			BlockStyles:  map[string]string{},
		},
		Parser: ParserConfig{
			Extensions: []string{"table", "strikethrough", "linkify"},
		},
		FrontMatter: FrontMatterConfig{Strip: true},
		Limits:      LimitsConfig{MaxNesting: 64},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Output: OutputConfig{
			Indent:    true,
			Pattern:   "*.md",
			Recursive: true,
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	for _, name := range cfg.Parser.Extensions {
		if !markdown.KnownExtension(name) {
			return fmt.Errorf("%w: %s", ErrParserExtensionUnknown, name)
		}
	}
	if cfg.Limits.MaxNesting < 0 {
		return fmt.Errorf("%w: %d", ErrMaxNestingInvalid, cfg.Limits.MaxNesting)
	}
	for key, style := range cfg.Styles.BlockStyles {
		if strings.TrimSpace(style) == "" {
			return fmt.Errorf("%w: %s", ErrBlockStyleEmpty, key)
		}
	}
	for key, style := range cfg.Styles.InlineStyles {
		if strings.TrimSpace(style.Type) == "" {
			return fmt.Errorf("%w: %s", ErrInlineStyleEmpty, key)
		}
	}
	if pattern := strings.TrimSpace(cfg.Output.Pattern); pattern != "" {
		if _, err := path.Match(pattern, "sample.md"); err != nil {
			return fmt.Errorf("%w: %s", ErrOutputPatternInvalid, pattern)
		}
	}
	return cfg.validateLogging()
}

func (cfg Config) validateLogging() error {
	provider := NormalizeProvider(cfg.Logging.Provider)
	switch provider {
	case "", "console", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// NormalizeProvider lower-cases and trims a provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
