// Package convertcmd exposes markdown conversion as go-command handlers so
// hosts can dispatch file and directory conversions.
package convertcmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdraft/internal/commands"
	"github.com/goliatone/go-mdraft/internal/convert"
	"github.com/goliatone/go-mdraft/internal/draft"
	"github.com/goliatone/go-mdraft/internal/logging"
	"github.com/goliatone/go-mdraft/internal/markdown"
	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

const (
	fileOperation      = "convert.file"
	directoryOperation = "convert.directory"
)

// ErrConverterRequired is returned when handlers are built without a
// converter.
var ErrConverterRequired = errors.New("convert command: converter is nil")

var (
	_ command.Commander[ConvertFileCommand]      = (*ConvertFileHandler)(nil)
	_ command.Commander[ConvertDirectoryCommand] = (*ConvertDirectoryHandler)(nil)
)

// Converter turns markdown into a content state. *convert.Service satisfies
// it.
type Converter interface {
	Convert(ctx context.Context, markdown string, overrides convert.StyleOverrides) (*draft.Document, error)
}

// DocumentValidator checks a produced document before it is written.
type DocumentValidator interface {
	ValidateDocument(doc *draft.Document) error
}

// Dependencies are shared by both handlers.
type Dependencies struct {
	Converter Converter
	// Validator is optional.
	Validator DocumentValidator
	// Writer defaults to the local filesystem.
	Writer OutputWriter
	// Open returns the filesystem rooted at dir; defaults to os.DirFS.
	Open   func(dir string) fs.FS
	Logger interfaces.Logger
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Writer == nil {
		d.Writer = NewFileWriter(nil)
	}
	if d.Open == nil {
		d.Open = osFS
	}
	if d.Logger == nil {
		d.Logger = logging.NoOp()
	}
	return d
}

// ConvertFileHandler handles ConvertFileCommand.
type ConvertFileHandler struct {
	inner *commands.Handler[ConvertFileCommand]
}

// NewConvertFileHandler builds the single file handler.
func NewConvertFileHandler(deps Dependencies, opts ...commands.HandlerOption[ConvertFileCommand]) *ConvertFileHandler {
	deps = deps.withDefaults()

	exec := func(ctx context.Context, msg ConvertFileCommand) error {
		if deps.Converter == nil {
			return ErrConverterRequired
		}
		dir, name := filepath.Split(filepath.Clean(msg.Path))
		dir = filepath.Clean(dir)

		loader := markdown.NewLoader(deps.Open(dir), markdown.LoaderConfig{
			BasePath:         dir,
			StripFrontMatter: msg.StripFrontMatter,
		})
		src, err := loader.LoadFile(ctx, name)
		if err != nil {
			return err
		}

		output := msg.Output
		if strings.TrimSpace(output) == "" {
			output = jsonPath(filepath.Join(dir, name))
		}
		return convertSource(ctx, deps, src, output, msg.Indent, msg.Overrides)
	}

	handlerOpts := []commands.HandlerOption[ConvertFileCommand]{
		commands.WithLogger[ConvertFileCommand](deps.Logger),
		commands.WithOperation[ConvertFileCommand](fileOperation),
		commands.WithMessageFields(func(msg ConvertFileCommand) map[string]any {
			fields := map[string]any{"path": msg.Path}
			if msg.Output != "" {
				fields["output"] = msg.Output
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertFileCommand](deps.Logger)),
	}
	return &ConvertFileHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ConvertFileCommand].
func (h *ConvertFileHandler) Execute(ctx context.Context, msg ConvertFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ConvertDirectoryHandler handles ConvertDirectoryCommand.
type ConvertDirectoryHandler struct {
	inner *commands.Handler[ConvertDirectoryCommand]
}

// NewConvertDirectoryHandler builds the directory handler. Every file is
// attempted; failures are joined into the returned error.
func NewConvertDirectoryHandler(deps Dependencies, opts ...commands.HandlerOption[ConvertDirectoryCommand]) *ConvertDirectoryHandler {
	deps = deps.withDefaults()

	exec := func(ctx context.Context, msg ConvertDirectoryCommand) error {
		if deps.Converter == nil {
			return ErrConverterRequired
		}
		root := filepath.Clean(msg.Directory)
		loader := markdown.NewLoader(deps.Open(root), markdown.LoaderConfig{
			BasePath:         root,
			Pattern:          msg.Pattern,
			Recursive:        msg.Recursive,
			StripFrontMatter: msg.StripFrontMatter,
		})
		sources, err := loader.LoadDirectory(ctx, ".")
		if err != nil {
			return err
		}

		outRoot := root
		if strings.TrimSpace(msg.OutputDir) != "" {
			outRoot = filepath.Clean(msg.OutputDir)
		}

		var errs []error
		converted := 0
		for _, src := range sources {
			if err := ctx.Err(); err != nil {
				return err
			}
			output := jsonPath(filepath.Join(outRoot, filepath.FromSlash(src.Path)))
			if err := convertSource(ctx, deps, src, output, msg.Indent, msg.Overrides); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", src.Path, err))
				continue
			}
			converted++
		}

		logging.WithFields(deps.Logger, map[string]any{
			"converted_count": converted,
			"error_count":     len(errs),
		}).Info("mdraft.command.convert_directory.completed")
		return errors.Join(errs...)
	}

	handlerOpts := []commands.HandlerOption[ConvertDirectoryCommand]{
		commands.WithLogger[ConvertDirectoryCommand](deps.Logger),
		commands.WithOperation[ConvertDirectoryCommand](directoryOperation),
		commands.WithMessageFields(func(msg ConvertDirectoryCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.OutputDir != "" {
				fields["output_dir"] = msg.OutputDir
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertDirectoryCommand](deps.Logger)),
	}
	return &ConvertDirectoryHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ConvertDirectoryCommand].
func (h *ConvertDirectoryHandler) Execute(ctx context.Context, msg ConvertDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

func convertSource(ctx context.Context, deps Dependencies, src *markdown.Source, output string, indent bool, overrides convert.StyleOverrides) error {
	logger := logging.WithSourceContext(deps.Logger, src.Path, output)

	doc, err := deps.Converter.Convert(ctx, string(src.Body), overrides)
	if err != nil {
		return err
	}
	if deps.Validator != nil {
		if err := deps.Validator.ValidateDocument(doc); err != nil {
			return err
		}
	}
	payload, err := doc.JSON(indent)
	if err != nil {
		return err
	}
	if err := deps.Writer.WriteFile(output, payload); err != nil {
		return err
	}
	logger.Debug("mdraft.command.convert.written", "blocks", len(doc.Blocks), "entities", len(doc.EntityMap))
	return nil
}

// jsonPath swaps the file extension for .json.
func jsonPath(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + ".json"
}
