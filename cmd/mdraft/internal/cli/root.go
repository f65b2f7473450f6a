// Package cli implements the mdraft command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mdraft/cmd/mdraft/internal/bootstrap"
)

var version = "dev"

// moduleBuilder is swapped in tests.
var moduleBuilder = bootstrap.BuildModule

type globalFlags struct {
	configPath  string
	logLevel    string
	logProvider string
	logFormat   string
	schema      bool
	maxNesting  int
}

func (g *globalFlags) options(cmd *cobra.Command) bootstrap.Options {
	opts := bootstrap.Options{
		ConfigPath:  g.configPath,
		LogLevel:    g.logLevel,
		LogProvider: g.logProvider,
		LogFormat:   g.logFormat,
		MaxNesting:  g.maxNesting,
		Stdout:      cmd.OutOrStdout(),
	}
	if cmd.Flags().Changed("schema") {
		schema := g.schema
		opts.Schema = &schema
	}
	return opts
}

func (g *globalFlags) build(cmd *cobra.Command) (*bootstrap.Module, error) {
	return moduleBuilder(g.options(cmd))
}

// NewRootCommand assembles the command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "mdraft",
		Short: "Convert markdown into Draft.js content state",
		Long: `mdraft converts markdown files into Draft.js raw content state JSON.
Headings, lists, quotes, code fences, tables, images, links and video
embeds are mapped onto blocks, inline styles and entities.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to a TOML or JSON config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&flags.logProvider, "log-provider", "", "Logger provider (console, gologger)")
	pf.StringVar(&flags.logFormat, "log-format", "", "go-logger output format (console, json, pretty)")
	pf.BoolVar(&flags.schema, "schema", false, "Validate produced documents against the content state schema")
	pf.IntVar(&flags.maxNesting, "max-nesting", 0, "Maximum inline nesting depth")

	root.AddCommand(
		newConvertCmd(flags),
		newValidateCmd(flags),
		newStylesCmd(flags),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line tool.
func Execute() error {
	return NewRootCommand().Execute()
}
