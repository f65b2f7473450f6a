// Package logging hands out module scoped loggers. Hosts supply an
// interfaces.LoggerProvider; without one every logger is a no-op.
package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

const (
	rootModule     = "mdraft"
	convertModule  = "mdraft.convert"
	commandsModule = "mdraft.commands"
	cliModule      = "mdraft.cli"
)

const (
	fieldSourcePath = "source_path"
	fieldOutputPath = "output_path"
)

// ModuleLogger resolves the logger for module and tags it with a module field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// ConvertLogger is used by the conversion service.
func ConvertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// CommandsLogger is used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// CLILogger is used by the mdraft binary.
func CLILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cliModule)
}

// WithSourceContext adds the markdown source and JSON output paths. Blank
// values are skipped.
func WithSourceContext(logger interfaces.Logger, source, output string) interfaces.Logger {
	fields := map[string]any{}
	if source = strings.TrimSpace(source); source != "" {
		fields[fieldSourcePath] = source
	}
	if output = strings.TrimSpace(output); output != "" {
		fields[fieldOutputPath] = output
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
