// Package convert turns markdown into a Draft.js raw content state. Each
// block produced by the splitter is parsed, classified and walked in order,
// sharing one entity map across the document.
package convert

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdraft/internal/draft"
	"github.com/goliatone/go-mdraft/internal/inlinehtml"
	"github.com/goliatone/go-mdraft/internal/logging"
	"github.com/goliatone/go-mdraft/internal/markdown"
	"github.com/goliatone/go-mdraft/internal/shortcode"
	"github.com/goliatone/go-mdraft/internal/splitter"
	"github.com/goliatone/go-mdraft/pkg/interfaces"
	"github.com/goliatone/go-mdraft/pkg/mdast"
)

const (
	textCodeParseFailed     = "MDRAFT_PARSE_FAILED"
	textCodeNestingTooDeep  = "MDRAFT_NESTING_TOO_DEEP"
	textCodeMalformedEmbed  = "MDRAFT_MALFORMED_EMBED"
	textCodeConvertCanceled = "MDRAFT_CONVERT_CANCELED"
)

// Service converts markdown documents. It is immutable after construction and
// safe for concurrent use.
type Service struct {
	parser     interfaces.MarkdownParser
	query      interfaces.HTMLQuery
	markers    []inlinehtml.Marker
	matcher    *inlinehtml.Matcher
	styles     Styles
	maxNesting int
	logger     interfaces.Logger
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithParser replaces the goldmark parser.
func WithParser(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithHTMLQuery replaces the fragment query used for inline HTML markers.
func WithHTMLQuery(query interfaces.HTMLQuery) ServiceOption {
	return func(s *Service) {
		s.query = query
	}
}

// WithMarkers replaces the inline HTML marker registry.
func WithMarkers(markers []inlinehtml.Marker) ServiceOption {
	return func(s *Service) {
		s.markers = markers
	}
}

// WithStyles sets service wide overrides applied under per call overrides.
func WithStyles(overrides StyleOverrides) ServiceOption {
	return func(s *Service) {
		s.styles = NewStyles(overrides)
	}
}

// WithMaxNesting bounds recursion in the inline walk.
func WithMaxNesting(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.maxNesting = limit
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a Service with the goldmark parser and default styles.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		styles:     NewStyles(StyleOverrides{}),
		maxNesting: DefaultMaxNesting,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.parser == nil {
		s.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{})
	}
	s.matcher = inlinehtml.NewMatcher(s.query, s.markers)
	return s
}

// Styles returns the effective style tables with overrides applied.
func (s *Service) Styles(overrides StyleOverrides) Styles {
	return s.styles.Merge(overrides)
}

// Convert builds the content state for markdown. Overrides apply to this call
// only.
func (s *Service) Convert(ctx context.Context, source string, overrides StyleOverrides) (*draft.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := s.logger.WithContext(ctx)
	styles := s.styles.Merge(overrides)

	doc := &draft.Document{
		Blocks:    []draft.Block{},
		EntityMap: draft.EntityMap{},
	}
	entities := newEntityFactory(doc.EntityMap)

	blocks := splitter.Split(source)
	for index, raw := range blocks {
		if err := ctx.Err(); err != nil {
			logger.Debug("mdraft.convert.canceled", "block", index)
			return nil, goerrors.Wrap(err, goerrors.CategoryCommand, "markdown conversion cancelled").
				WithTextCode(textCodeConvertCanceled)
		}

		block, err := s.convertBlock(logger, raw, styles, entities)
		if err != nil {
			logger.Error("mdraft.convert.block_failed", "block", index, "error", err)
			return nil, wrapBlockError(err)
		}
		doc.Blocks = append(doc.Blocks, block)
	}

	logger.Debug("mdraft.convert.complete", "blocks", len(doc.Blocks), "entities", len(doc.EntityMap))
	return doc, nil
}

func (s *Service) convertBlock(logger interfaces.Logger, raw string, styles Styles, entities *entityFactory) (draft.Block, error) {
	root, err := s.parser.Parse(raw)
	if err != nil {
		return draft.Block{}, err
	}

	state := newWalkState(styles, s.matcher, entities, s.maxNesting)
	if err := state.walkRoot(root); err != nil {
		return draft.Block{}, err
	}

	style, depth := classify(root, styles)
	if first := root.FirstChild(); first != nil && first.Type == mdast.TypeParagraph &&
		shortcode.IsBlock(first.Raw) && !shortcode.IsEmbed(first.Raw) {
		if sc, ok := shortcode.Parse(first.Raw); ok {
			logger.Debug("mdraft.convert.shortcode_block", "shortcode", sc.Name, "params", len(sc.Params))
		}
	}
	return state.block(style, depth), nil
}

func wrapBlockError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, ErrNestingTooDeep):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "markdown nesting exceeds limit").
			WithTextCode(textCodeNestingTooDeep)
	case errors.Is(err, shortcode.ErrMalformedEmbed):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "malformed embed shortcode").
			WithTextCode(textCodeMalformedEmbed)
	default:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "markdown block could not be parsed").
			WithTextCode(textCodeParseFailed)
	}
}
