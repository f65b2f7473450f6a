package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mdraft"
	"github.com/goliatone/go-mdraft/cmd/mdraft/internal/bootstrap"
)

type convertFlags struct {
	output           string
	outDir           string
	pattern          string
	recursive        bool
	indent           bool
	stripFrontMatter bool
	retries          int
	blockStyles      map[string]string
	inlineStyles     map[string]string
}

func newConvertCmd(global *globalFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [file|directory|-]",
		Short: "Convert markdown to content state JSON",
		Long: `Convert a markdown file, every markdown file below a directory, or
standard input ("-") into Draft.js raw content state JSON.

Files are written next to their source with a .json extension unless
--output or --out-dir is given. Use --output - to print to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, global, flags, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", `Output file for single file conversion ("-" for stdout)`)
	f.StringVar(&flags.outDir, "out-dir", "", "Output directory mirroring the source tree")
	f.StringVar(&flags.pattern, "pattern", "", "Glob for directory conversion (default from config)")
	f.BoolVarP(&flags.recursive, "recursive", "r", true, "Descend into sub-directories")
	f.BoolVar(&flags.indent, "indent", true, "Indent JSON output")
	f.BoolVar(&flags.stripFrontMatter, "strip-front-matter", true, "Strip YAML/TOML front matter")
	f.IntVar(&flags.retries, "retries", 0, "Retry failed conversions this many times")
	f.StringToStringVar(&flags.blockStyles, "block-style", nil, "Block style override, e.g. Header1=title")
	f.StringToStringVar(&flags.inlineStyles, "inline-style", nil, "Inline style override, e.g. Strong=BOLD:**")
	return cmd
}

func runConvert(cmd *cobra.Command, global *globalFlags, flags *convertFlags, target string) error {
	module, err := global.build(cmd)
	if err != nil {
		return err
	}
	overrides, err := bootstrap.ParseStyles(flags.blockStyles, flags.inlineStyles)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if target == "-" {
		return convertStdin(ctx, cmd, module, flags, overrides)
	}

	cfg := module.Module.Config()
	if !cmd.Flags().Changed("recursive") {
		flags.recursive = cfg.Output.Recursive
	}
	if !cmd.Flags().Changed("indent") {
		flags.indent = cfg.Output.Indent
	}
	if !cmd.Flags().Changed("strip-front-matter") {
		flags.stripFrontMatter = cfg.FrontMatter.Strip
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	handlers, err := module.Module.RegisterCommands(nil)
	if err != nil {
		return err
	}

	retries := runner.WithMaxRetries(flags.retries)
	logger := module.Logger.WithContext(ctx)

	if info.IsDir() {
		pattern := flags.pattern
		if strings.TrimSpace(pattern) == "" {
			pattern = cfg.Output.Pattern
		}
		sub := dispatcher.SubscribeCommand(handlers.Directory, retries)
		defer sub.Unsubscribe()

		msg := mdraft.ConvertDirectoryCommand{
			Directory:        target,
			OutputDir:        flags.outDir,
			Pattern:          pattern,
			Recursive:        flags.recursive,
			Indent:           flags.indent,
			StripFrontMatter: flags.stripFrontMatter,
			Overrides:        overrides,
		}
		logger.Info("mdraft.cli.convert_directory", "directory", target)
		return dispatcher.Dispatch(ctx, msg)
	}

	output := flags.output
	if output == "" && flags.outDir != "" {
		output = joinOutput(flags.outDir, target)
	}
	sub := dispatcher.SubscribeCommand(handlers.File, retries)
	defer sub.Unsubscribe()

	msg := mdraft.ConvertFileCommand{
		Path:             target,
		Output:           output,
		Indent:           flags.indent,
		StripFrontMatter: flags.stripFrontMatter,
		Overrides:        overrides,
	}
	logger.Info("mdraft.cli.convert_file", "path", target)
	return dispatcher.Dispatch(ctx, msg)
}

func convertStdin(ctx context.Context, cmd *cobra.Command, module *bootstrap.Module, flags *convertFlags, overrides mdraft.StyleOverrides) error {
	source, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	payload, err := module.Module.ConvertJSON(ctx, string(source), overrides, flags.indent)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flags.output != "" && flags.output != "-" {
		return os.WriteFile(flags.output, append(payload, '\n'), 0o644)
	}
	_, err = fmt.Fprintf(out, "%s\n", payload)
	return err
}

// joinOutput places the .json for source under dir.
func joinOutput(dir, source string) string {
	base := filepath.Base(source)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".json")
}
