// Package mdraft converts markdown into the Draft.js raw content state.
//
// Convert covers the common case with default settings. New builds a Module
// from a Config for hosts that need custom styles, logging, schema checks or
// the file conversion commands.
package mdraft

import (
	"context"
	"errors"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	convertcmd "github.com/goliatone/go-mdraft/internal/commands/convert"
	"github.com/goliatone/go-mdraft/internal/convert"
	"github.com/goliatone/go-mdraft/internal/di"
	"github.com/goliatone/go-mdraft/internal/draft"
	"github.com/goliatone/go-mdraft/internal/inlinehtml"
	"github.com/goliatone/go-mdraft/internal/markdown"
	"github.com/goliatone/go-mdraft/internal/validation"
	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// Document model exports.
type (
	Document    = draft.Document
	Block       = draft.Block
	StyleRange  = draft.StyleRange
	EntityRange = draft.EntityRange
	Entity      = draft.Entity
	EntityMap   = draft.EntityMap
)

// Style exports.
type (
	StyleOverrides = convert.StyleOverrides
	InlineStyle    = convert.InlineStyle
	Marker         = inlinehtml.Marker
)

// FrontMatter is metadata stripped from the head of a document.
type FrontMatter = interfaces.FrontMatter

// Command exports.
type (
	ConvertFileCommand      = convertcmd.ConvertFileCommand
	ConvertDirectoryCommand = convertcmd.ConvertDirectoryCommand
	CommandRegistry         = convertcmd.CommandRegistry
	CommandHandlers         = convertcmd.HandlerSet
	OutputWriter            = convertcmd.OutputWriter
)

var (
	// ErrNestingTooDeep is returned when inline nesting exceeds the limit.
	ErrNestingTooDeep = convert.ErrNestingTooDeep
	// ErrContentStateInvalid is returned by schema validation.
	ErrContentStateInvalid = validation.ErrContentStateInvalid
)

// Option customises the module wiring.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithParser         = di.WithParser
	WithHTMLQuery      = di.WithHTMLQuery
	WithMarkers        = di.WithMarkers
	WithOutputWriter   = di.WithOutputWriter
	WithFS             = di.WithFS
)

// Result is a converted document plus any front matter stripped from it.
type Result struct {
	Document    *Document
	FrontMatter FrontMatter
}

// Module is the configured converter runtime. It is safe for concurrent use.
type Module struct {
	container *di.Container
}

// New validates cfg and wires a Module.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config
}

// Convert converts source. Front matter is stripped first when the
// configuration asks for it, and overrides apply to this call only. With
// schema validation enabled the document is checked before it is returned.
func (m *Module) Convert(ctx context.Context, source string, overrides StyleOverrides) (*Result, error) {
	if err := validateOverrides(overrides); err != nil {
		return nil, err
	}

	result := &Result{}
	body := source
	if m.container.Config.FrontMatter.Strip {
		meta, stripped, err := markdown.ParseFrontMatter([]byte(source))
		if err != nil {
			return nil, err
		}
		result.FrontMatter = meta
		body = string(stripped)
	}

	doc, err := m.container.Converter().Convert(ctx, body, overrides)
	if err != nil {
		return nil, err
	}
	if validator := m.container.Validator(); validator != nil {
		if err := validator.ValidateDocument(doc); err != nil {
			return nil, err
		}
	}
	result.Document = doc
	return result, nil
}

// ConvertJSON converts source and renders the content state JSON.
func (m *Module) ConvertJSON(ctx context.Context, source string, overrides StyleOverrides, indent bool) ([]byte, error) {
	result, err := m.Convert(ctx, source, overrides)
	if err != nil {
		return nil, err
	}
	return result.Document.JSON(indent)
}

// Styles returns the effective style tables after config and overrides.
func (m *Module) Styles(overrides StyleOverrides) StyleOverrides {
	return m.container.Converter().Styles(overrides).Snapshot()
}

// ValidateJSON checks a serialised content state against the schema and the
// entity reference rules, independent of the module configuration.
func (m *Module) ValidateJSON(payload []byte) error {
	return ValidateJSON(payload)
}

// RegisterCommands builds the file and directory conversion handlers and
// registers them with reg when it is not nil.
func (m *Module) RegisterCommands(reg CommandRegistry) (*CommandHandlers, error) {
	return m.container.RegisterCommands(reg)
}

// LoggerProvider exposes the provider chosen by the logging config.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

var (
	defaultOnce    sync.Once
	defaultService *convert.Service
)

// Convert converts markdown with the default styles, merged with the optional
// overrides.
func Convert(source string, overrides ...StyleOverrides) (*Document, error) {
	defaultOnce.Do(func() {
		defaultService = convert.NewService()
	})

	var merged StyleOverrides
	for _, o := range overrides {
		merged = mergeOverrides(merged, o)
	}
	if err := validateOverrides(merged); err != nil {
		return nil, err
	}
	return defaultService.Convert(context.Background(), source, merged)
}

// ValidateJSON checks a serialised content state.
func ValidateJSON(payload []byte) error {
	validator, err := validation.Default()
	if err != nil {
		return err
	}
	return validator.ValidateJSON(payload)
}

// ValidationIssue is one problem found in a content state.
type ValidationIssue = validation.Issue

// Issues lists the individual problems carried by a validation error.
func Issues(err error) []ValidationIssue {
	return validation.Issues(err)
}

// IsInvalidContentState reports whether err came from content state
// validation.
func IsInvalidContentState(err error) bool {
	return errors.Is(err, ErrContentStateInvalid)
}

func validateOverrides(overrides StyleOverrides) error {
	if err := overrides.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "style overrides are invalid").
			WithTextCode("MDRAFT_STYLES_INVALID")
	}
	return nil
}

func mergeOverrides(base, next StyleOverrides) StyleOverrides {
	if len(next.InlineStyles) > 0 && base.InlineStyles == nil {
		base.InlineStyles = make(map[string]InlineStyle, len(next.InlineStyles))
	}
	for key, style := range next.InlineStyles {
		base.InlineStyles[key] = style
	}
	if len(next.BlockStyles) > 0 && base.BlockStyles == nil {
		base.BlockStyles = make(map[string]string, len(next.BlockStyles))
	}
	for key, style := range next.BlockStyles {
		base.BlockStyles[key] = style
	}
	return base
}
