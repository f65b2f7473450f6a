// Package bootstrap builds the mdraft module used by the command line tool.
package bootstrap

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-mdraft"
	convertcmd "github.com/goliatone/go-mdraft/internal/commands/convert"
	"github.com/goliatone/go-mdraft/internal/logging"
	"github.com/goliatone/go-mdraft/internal/runtimeconfig"
	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps. Zero values keep the
// config file (or default) settings.
type Options struct {
	ConfigPath     string
	LogLevel       string
	LogProvider    string
	LogFormat      string
	Schema         *bool
	MaxNesting     int
	Stdout         io.Writer
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the mdraft module and the CLI logger.
type Module struct {
	Module *mdraft.Module
	Logger interfaces.Logger
}

// BuildModule loads configuration, applies flag overrides and constructs the
// module.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	moduleOpts := []mdraft.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, mdraft.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.Stdout != nil {
		moduleOpts = append(moduleOpts, mdraft.WithOutputWriter(convertcmd.NewFileWriter(opts.Stdout)))
	}

	module, err := mdraft.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise mdraft module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.CLILogger(module.LoggerProvider()),
	}, nil
}

// LoadConfig resolves the configuration without building a module.
func LoadConfig(opts Options) (mdraft.Config, error) {
	cfg := mdraft.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := runtimeconfig.Load(path)
		if err != nil {
			return mdraft.Config{}, err
		}
		cfg = loaded
	}

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if provider := strings.TrimSpace(opts.LogProvider); provider != "" {
		cfg.Logging.Provider = provider
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}
	if opts.Schema != nil {
		cfg.Validation.Schema = *opts.Schema
	}
	if opts.MaxNesting > 0 {
		cfg.Limits.MaxNesting = opts.MaxNesting
	}

	if err := cfg.Validate(); err != nil {
		return mdraft.Config{}, err
	}
	return cfg, nil
}

// ParseStyles turns key=value flag pairs into overrides. Inline values use
// TYPE or TYPE:symbol.
func ParseStyles(block, inline map[string]string) (mdraft.StyleOverrides, error) {
	var overrides mdraft.StyleOverrides
	if len(block) > 0 {
		overrides.BlockStyles = make(map[string]string, len(block))
		for key, value := range block {
			key, value = strings.TrimSpace(key), strings.TrimSpace(value)
			if key == "" {
				return overrides, fmt.Errorf("block style: empty key")
			}
			overrides.BlockStyles[key] = value
		}
	}
	if len(inline) > 0 {
		overrides.InlineStyles = make(map[string]mdraft.InlineStyle, len(inline))
		for key, value := range inline {
			key = strings.TrimSpace(key)
			if key == "" {
				return overrides, fmt.Errorf("inline style: empty key")
			}
			styleType, symbol, _ := strings.Cut(value, ":")
			overrides.InlineStyles[key] = mdraft.InlineStyle{
				Type:   strings.TrimSpace(styleType),
				Symbol: symbol,
			}
		}
	}
	return overrides, overrides.Validate()
}
