package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-mdraft/internal/runtimeconfig"
)

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdraft.toml")
	body := `
[styles.block_styles]
Header1 = "title"

[styles.inline_styles.Strong]
type = "HEAVY"
symbol = "**"

[limits]
max_nesting = 12

[logging]
provider = "gologger"
level = "debug"
format = "json"

[validation]
schema = true
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := cfg.Styles.BlockStyles["Header1"]; got != "title" {
		t.Fatalf("expected Header1 override, got %q", got)
	}
	if got := cfg.Styles.InlineStyles["Strong"].Type; got != "HEAVY" {
		t.Fatalf("expected Strong override, got %q", got)
	}
	if cfg.Limits.MaxNesting != 12 {
		t.Fatalf("expected max nesting 12, got %d", cfg.Limits.MaxNesting)
	}
	if cfg.Logging.Provider != "gologger" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if !cfg.Validation.Schema {
		t.Fatal("expected schema validation enabled")
	}
	if !cfg.FrontMatter.Strip || cfg.Output.Pattern != "*.md" {
		t.Fatalf("expected defaults to survive, got %+v %+v", cfg.FrontMatter, cfg.Output)
	}
}

func TestDecodeJSON(t *testing.T) {
	cfg, err := runtimeconfig.Decode(".json", []byte(`{"output":{"indent":false,"pattern":"*.markdown","recursive":false}}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if cfg.Output.Indent || cfg.Output.Recursive || cfg.Output.Pattern != "*.markdown" {
		t.Fatalf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Limits.MaxNesting != 64 {
		t.Fatalf("expected default nesting, got %d", cfg.Limits.MaxNesting)
	}
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		ext  string
		data string
		want error
	}{
		{name: "unknown format", ext: ".yaml", data: "a: b", want: runtimeconfig.ErrConfigFormatUnknown},
		{name: "invalid values", ext: ".json", data: `{"limits":{"maxNesting":-3}}`, want: runtimeconfig.ErrMaxNestingInvalid},
		{name: "unknown toml key", ext: ".toml", data: "[limits]\ndepth = 3\n"},
		{name: "unknown json key", ext: ".json", data: `{"limitz":{}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runtimeconfig.Decode(tc.ext, []byte(tc.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := runtimeconfig.Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
