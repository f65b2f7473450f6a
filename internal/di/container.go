// Package di wires the converter, its logger provider, schema validation and
// command handlers from a runtime configuration.
package di

import (
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-mdraft/internal/commands"
	convertcmd "github.com/goliatone/go-mdraft/internal/commands/convert"
	"github.com/goliatone/go-mdraft/internal/convert"
	"github.com/goliatone/go-mdraft/internal/inlinehtml"
	"github.com/goliatone/go-mdraft/internal/logging"
	"github.com/goliatone/go-mdraft/internal/logging/console"
	"github.com/goliatone/go-mdraft/internal/logging/gologger"
	"github.com/goliatone/go-mdraft/internal/markdown"
	"github.com/goliatone/go-mdraft/internal/runtimeconfig"
	"github.com/goliatone/go-mdraft/internal/validation"
	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// Container holds the wired services. It is immutable after NewContainer
// returns.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	parser         interfaces.MarkdownParser
	htmlQuery      interfaces.HTMLQuery
	markers        []inlinehtml.Marker
	writer         convertcmd.OutputWriter
	openFS         func(string) fs.FS

	converter *convert.Service
	validator *validation.Validator
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithParser replaces the goldmark parser.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithHTMLQuery replaces the inline HTML fragment query.
func WithHTMLQuery(query interfaces.HTMLQuery) Option {
	return func(c *Container) {
		c.htmlQuery = query
	}
}

// WithMarkers replaces the inline HTML marker registry.
func WithMarkers(markers []inlinehtml.Marker) Option {
	return func(c *Container) {
		c.markers = markers
	}
}

// WithOutputWriter sets where file commands write documents.
func WithOutputWriter(writer convertcmd.OutputWriter) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

// WithFS sets how file commands open source directories.
func WithFS(open func(dir string) fs.FS) Option {
	return func(c *Container) {
		c.openFS = open
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureConverter()
	if err := c.configureValidator(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "mdraft").Debug("mdraft.container.configured",
		"logging_provider", c.loggerProviderName(),
		"schema_validation", c.validator != nil,
		"max_nesting", cfg.Limits.MaxNesting,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	logCfg := c.Config.Logging
	switch runtimeconfig.NormalizeProvider(logCfg.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level, err := console.ParseLevel(logCfg.Level)
		if err != nil {
			return err
		}
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: level})
	}
	return nil
}

func (c *Container) loggerProviderName() string {
	switch c.loggerProvider.(type) {
	case *gologger.Provider:
		return "gologger"
	case *console.Provider:
		return "console"
	default:
		return "custom"
	}
}

func (c *Container) configureConverter() {
	parser := c.parser
	if parser == nil {
		parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
			Extensions: c.Config.Parser.Extensions,
		})
	}
	c.converter = convert.NewService(
		convert.WithParser(parser),
		convert.WithHTMLQuery(c.htmlQuery),
		convert.WithMarkers(c.markers),
		convert.WithStyles(StyleOverrides(c.Config.Styles)),
		convert.WithMaxNesting(c.Config.Limits.MaxNesting),
		convert.WithLogger(logging.ConvertLogger(c.loggerProvider)),
	)
}

func (c *Container) configureValidator() error {
	if !c.Config.Validation.Schema {
		return nil
	}
	validator, err := validation.Default()
	if err != nil {
		return err
	}
	c.validator = validator
	return nil
}

// LoggerProvider returns the configured provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Converter returns the conversion service.
func (c *Container) Converter() *convert.Service {
	return c.converter
}

// Validator returns the schema validator, or nil when schema validation is
// disabled.
func (c *Container) Validator() *validation.Validator {
	return c.validator
}

// CommandDependencies bundles what the convert command handlers need.
func (c *Container) CommandDependencies() convertcmd.Dependencies {
	deps := convertcmd.Dependencies{
		Converter: c.converter,
		Writer:    c.writer,
		Open:      c.openFS,
		Logger:    commands.CommandLogger(c.loggerProvider, "convert"),
	}
	if c.validator != nil {
		deps.Validator = c.validator
	}
	if deps.Open == nil {
		deps.Open = func(dir string) fs.FS { return os.DirFS(dir) }
	}
	return deps
}

// RegisterCommands builds the convert handlers and registers them with reg.
func (c *Container) RegisterCommands(reg convertcmd.CommandRegistry, opts ...convertcmd.Option) (*convertcmd.HandlerSet, error) {
	return convertcmd.RegisterConvertCommands(reg, c.CommandDependencies(), c.loggerProvider, opts...)
}

// StyleOverrides converts configured styles into converter overrides. Blank
// keys are dropped.
func StyleOverrides(cfg runtimeconfig.StylesConfig) convert.StyleOverrides {
	var out convert.StyleOverrides
	if len(cfg.InlineStyles) > 0 {
		out.InlineStyles = make(map[string]convert.InlineStyle, len(cfg.InlineStyles))
		for key, style := range cfg.InlineStyles {
			if key = strings.TrimSpace(key); key == "" {
				continue
			}
			out.InlineStyles[key] = convert.InlineStyle{Type: style.Type, Symbol: style.Symbol}
		}
	}
	if len(cfg.BlockStyles) > 0 {
		out.BlockStyles = make(map[string]string, len(cfg.BlockStyles))
		for key, style := range cfg.BlockStyles {
			if key = strings.TrimSpace(key); key == "" {
				continue
			}
			out.BlockStyles[key] = style
		}
	}
	return out
}
