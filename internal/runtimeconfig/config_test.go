package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-mdraft/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "unknown extension",
			mutate: func(c *runtimeconfig.Config) { c.Parser.Extensions = []string{"footnotes-plus"} },
			want:   runtimeconfig.ErrParserExtensionUnknown,
		},
		{
			name:   "negative nesting",
			mutate: func(c *runtimeconfig.Config) { c.Limits.MaxNesting = -1 },
			want:   runtimeconfig.ErrMaxNestingInvalid,
		},
		{
			name:   "empty block style",
			mutate: func(c *runtimeconfig.Config) { c.Styles.BlockStyles["Header1"] = " " },
			want:   runtimeconfig.ErrBlockStyleEmpty,
		},
		{
			name: "inline style without type",
			mutate: func(c *runtimeconfig.Config) {
				c.Styles.InlineStyles["Strong"] = runtimeconfig.InlineStyleConfig{Symbol: "**"}
			},
			want: runtimeconfig.ErrInlineStyleEmpty,
		},
		{
			name:   "bad pattern",
			mutate: func(c *runtimeconfig.Config) { c.Output.Pattern = "[md" },
			want:   runtimeconfig.ErrOutputPatternInvalid,
		},
		{
			name:   "unknown provider",
			mutate: func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" },
			want:   runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name:   "bad level",
			mutate: func(c *runtimeconfig.Config) { c.Logging.Level = "loud" },
			want:   runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name: "bad gologger format",
			mutate: func(c *runtimeconfig.Config) {
				c.Logging.Provider = "gologger"
				c.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConsoleFormatIsIgnored(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("console provider should ignore format, got %v", err)
	}
}
