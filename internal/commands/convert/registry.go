package convertcmd

import (
	"errors"

	"github.com/goliatone/go-mdraft/internal/commands"
	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterConvertCommands.
type HandlerSet struct {
	File      *ConvertFileHandler
	Directory *ConvertDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	fileHandlerOpts      []commands.HandlerOption[ConvertFileCommand]
	directoryHandlerOpts []commands.HandlerOption[ConvertDirectoryCommand]
}

// WithFileHandlerOptions forwards options to the ConvertFileHandler
// constructor.
func WithFileHandlerOptions(opts ...commands.HandlerOption[ConvertFileCommand]) Option {
	return func(cfg *options) {
		cfg.fileHandlerOpts = append(cfg.fileHandlerOpts, opts...)
	}
}

// WithDirectoryHandlerOptions forwards options to the
// ConvertDirectoryHandler constructor.
func WithDirectoryHandlerOptions(opts ...commands.HandlerOption[ConvertDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.directoryHandlerOpts = append(cfg.directoryHandlerOpts, opts...)
	}
}

// RegisterConvertCommands builds both conversion handlers and registers them
// with reg when it is not nil. The handlers are returned so callers can
// subscribe them to a dispatcher.
func RegisterConvertCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if deps.Converter == nil {
		return nil, errors.New("convert command registration: converter is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if deps.Logger == nil {
		deps.Logger = commands.CommandLogger(provider, "convert")
	}

	set := &HandlerSet{
		File:      NewConvertFileHandler(deps, cfg.fileHandlerOpts...),
		Directory: NewConvertDirectoryHandler(deps, cfg.directoryHandlerOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.File); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Directory); err != nil {
			return nil, err
		}
	}
	return set, nil
}
