package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-mdraft/internal/logging"
	"github.com/goliatone/go-mdraft/internal/logging/console"
)

func TestConsoleLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		Clock:    func() time.Time { return now },
		MinLevel: console.LevelDebug,
	})

	logger := logging.ConvertLogger(provider)
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"run": "r-1"})
	logger = logger.WithContext(ctx)

	logger.Debug("mdraft.convert.complete", "blocks", 3, "source_path", "docs/intro.md", "error", errors.New("bad input"))

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26.535897Z DEBUG mdraft.convert.complete blocks=3 error="bad input" logger=mdraft.convert module=mdraft.convert run=r-1 source_path=docs/intro.md`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: console.LevelInfo})

	logger := provider.GetLogger("mdraft.test")
	logger.Debug("ignored.debug")
	logger.Info("included.info", "odd")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "included.info") || !strings.Contains(lines[0], "field_0=odd") {
		t.Fatalf("unexpected line %s", lines[0])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"":        console.LevelInfo,
		"TRACE":   console.LevelTrace,
		" debug ": console.LevelDebug,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
	}
	for input, want := range cases {
		got, err := console.ParseLevel(input)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}

	if _, err := console.ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
