package convertcmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdraft/internal/commands/fixtures"
	"github.com/goliatone/go-mdraft/internal/convert"
	"github.com/goliatone/go-mdraft/internal/draft"
	mdvalidation "github.com/goliatone/go-mdraft/internal/validation"
)

type failingConverter struct {
	inner  Converter
	needle string
}

func (c failingConverter) Convert(ctx context.Context, markdown string, overrides convert.StyleOverrides) (*draft.Document, error) {
	if strings.Contains(markdown, c.needle) {
		return nil, errors.New("conversion refused")
	}
	return c.inner.Convert(ctx, markdown, overrides)
}

type rejectingValidator struct{}

func (rejectingValidator) ValidateDocument(*draft.Document) error {
	return errors.New("document rejected")
}

func mapOpener(files fstest.MapFS) func(string) fs.FS {
	return func(dir string) fs.FS {
		sub, err := fs.Sub(files, filepath.ToSlash(dir))
		if err != nil {
			return files
		}
		return sub
	}
}

func decodeBlocks(t *testing.T, data []byte) []draft.Block {
	t.Helper()
	var payload struct {
		Blocks []draft.Block `json:"blocks"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return payload.Blocks
}

func TestConvertFileHandlerWritesBesideSource(t *testing.T) {
	files := fstest.MapFS{
		"docs/intro.md": {Data: []byte("# Hello\n\nSome **bold** text\n")},
	}
	writer := fixtures.NewRecordingWriter()
	handler := NewConvertFileHandler(Dependencies{
		Converter: convert.NewService(),
		Writer:    writer,
		Open:      mapOpener(files),
	})

	if err := handler.Execute(context.Background(), ConvertFileCommand{Path: "docs/intro.md"}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, ok := writer.File(filepath.Join("docs", "intro.json"))
	if !ok {
		t.Fatalf("expected output beside source, got %v", writer.Paths())
	}
	blocks := decodeBlocks(t, data)
	// every line is a block, blank ones included
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}
	if blocks[0].Type != "header-one" || blocks[0].Text != "Hello" {
		t.Fatalf("unexpected heading block: %+v", blocks[0])
	}
	if blocks[2].Text != "Some bold text" {
		t.Fatalf("unexpected paragraph text %q", blocks[2].Text)
	}
}

func TestConvertFileHandlerStripsFrontMatter(t *testing.T) {
	files := fstest.MapFS{
		"post.md": {Data: []byte("---\ntitle: Post\n---\n# Hello\n")},
	}
	writer := fixtures.NewRecordingWriter()
	handler := NewConvertFileHandler(Dependencies{
		Converter: convert.NewService(),
		Writer:    writer,
		Open:      mapOpener(files),
	})

	err := handler.Execute(context.Background(), ConvertFileCommand{
		Path:             "post.md",
		Output:           "out/post.json",
		StripFrontMatter: true,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, ok := writer.File("out/post.json")
	if !ok {
		t.Fatalf("expected explicit output path, got %v", writer.Paths())
	}
	for _, block := range decodeBlocks(t, data) {
		if strings.Contains(block.Text, "title:") {
			t.Fatalf("front matter leaked into block %+v", block)
		}
	}
}

func TestConvertFileHandlerAppliesOverrides(t *testing.T) {
	files := fstest.MapFS{"a.md": {Data: []byte("# Title\n")}}
	writer := fixtures.NewRecordingWriter()
	handler := NewConvertFileHandler(Dependencies{
		Converter: convert.NewService(),
		Writer:    writer,
		Open:      mapOpener(files),
	})

	err := handler.Execute(context.Background(), ConvertFileCommand{
		Path:      "a.md",
		Overrides: convert.StyleOverrides{BlockStyles: map[string]string{"Header1": "title"}},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, _ := writer.File("a.json")
	if blocks := decodeBlocks(t, data); blocks[0].Type != "title" {
		t.Fatalf("expected overridden block style, got %q", blocks[0].Type)
	}
}

func TestConvertFileHandlerValidatesDocument(t *testing.T) {
	files := fstest.MapFS{"a.md": {Data: []byte("text\n")}}
	writer := fixtures.NewRecordingWriter()
	handler := NewConvertFileHandler(Dependencies{
		Converter: convert.NewService(),
		Validator: rejectingValidator{},
		Writer:    writer,
		Open:      mapOpener(files),
	})

	if err := handler.Execute(context.Background(), ConvertFileCommand{Path: "a.md"}); err == nil {
		t.Fatal("expected validator error")
	}
	if len(writer.Paths()) != 0 {
		t.Fatalf("expected nothing written, got %v", writer.Paths())
	}
}

func TestConvertFileHandlerPassesSchemaValidation(t *testing.T) {
	files := fstest.MapFS{"a.md": {Data: []byte("[link](https://example.com) and ![img](a.png)\n")}}
	validator, err := mdvalidation.Default()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	writer := fixtures.NewRecordingWriter()
	handler := NewConvertFileHandler(Dependencies{
		Converter: convert.NewService(),
		Validator: validator,
		Writer:    writer,
		Open:      mapOpener(files),
	})

	if err := handler.Execute(context.Background(), ConvertFileCommand{Path: "a.md", Indent: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, _ := writer.File("a.json")
	if !bytes.Contains(data, []byte("\n  ")) {
		t.Fatalf("expected indented output, got %s", data)
	}
}

func TestConvertFileHandlerMissingFile(t *testing.T) {
	handler := NewConvertFileHandler(Dependencies{
		Converter: convert.NewService(),
		Writer:    fixtures.NewRecordingWriter(),
		Open:      mapOpener(fstest.MapFS{}),
	})

	err := handler.Execute(context.Background(), ConvertFileCommand{Path: "missing.md"})
	if err == nil {
		t.Fatal("expected missing file error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestConvertFileHandlerRejectsInvalidMessage(t *testing.T) {
	handler := NewConvertFileHandler(Dependencies{Converter: convert.NewService()})

	err := handler.Execute(context.Background(), ConvertFileCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestConvertFileHandlerWritesStdout(t *testing.T) {
	files := fstest.MapFS{"a.md": {Data: []byte("hello\n")}}
	var out bytes.Buffer
	handler := NewConvertFileHandler(Dependencies{
		Converter: convert.NewService(),
		Writer:    NewFileWriter(&out),
		Open:      mapOpener(files),
	})

	if err := handler.Execute(context.Background(), ConvertFileCommand{Path: "a.md", Output: StdoutPath}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\n") || !strings.Contains(out.String(), `"text":"hello"`) {
		t.Fatalf("unexpected stdout payload %q", out.String())
	}
}

func TestFileWriterCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "deeper", "doc.json")

	if err := NewFileWriter(nil).WriteFile(target, []byte(`{}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{}` {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestConvertDirectoryHandlerMirrorsTree(t *testing.T) {
	files := fstest.MapFS{
		"site/a.md":        {Data: []byte("# A\n")},
		"site/nested/b.md": {Data: []byte("- item\n")},
		"site/notes.txt":   {Data: []byte("ignored")},
	}

	cases := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{name: "recursive", recursive: true, want: []string{
			filepath.Join("out", "a.json"),
			filepath.Join("out", "nested", "b.json"),
		}},
		{name: "top level only", want: []string{filepath.Join("out", "a.json")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			writer := fixtures.NewRecordingWriter()
			handler := NewConvertDirectoryHandler(Dependencies{
				Converter: convert.NewService(),
				Writer:    writer,
				Open:      mapOpener(files),
			})

			err := handler.Execute(context.Background(), ConvertDirectoryCommand{
				Directory: "site",
				OutputDir: "out",
				Recursive: tc.recursive,
			})
			if err != nil {
				t.Fatalf("execute: %v", err)
			}

			got := writer.Paths()
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("expected outputs %v, got %v", tc.want, got)
			}
		})
	}
}

func TestConvertDirectoryHandlerContinuesAfterFailures(t *testing.T) {
	files := fstest.MapFS{
		"docs/bad.md":  {Data: []byte("please fail\n")},
		"docs/good.md": {Data: []byte("fine\n")},
	}
	writer := fixtures.NewRecordingWriter()
	handler := NewConvertDirectoryHandler(Dependencies{
		Converter: failingConverter{inner: convert.NewService(), needle: "fail"},
		Writer:    writer,
		Open:      mapOpener(files),
	})

	err := handler.Execute(context.Background(), ConvertDirectoryCommand{Directory: "docs"})
	if err == nil {
		t.Fatal("expected joined error for failing file")
	}
	if !strings.Contains(err.Error(), "bad.md") {
		t.Fatalf("expected failing path in error, got %v", err)
	}
	if _, ok := writer.File(filepath.Join("docs", "good.json")); !ok {
		t.Fatalf("expected good file to be converted, got %v", writer.Paths())
	}
}

func TestConvertDirectoryHandlerReportsWriteFailures(t *testing.T) {
	files := fstest.MapFS{"docs/a.md": {Data: []byte("a\n")}}
	writer := fixtures.NewRecordingWriter()
	writer.Refuse(filepath.Join("docs", "a.json"))
	handler := NewConvertDirectoryHandler(Dependencies{
		Converter: convert.NewService(),
		Writer:    writer,
		Open:      mapOpener(files),
	})

	err := handler.Execute(context.Background(), ConvertDirectoryCommand{Directory: "docs"})
	if err == nil {
		t.Fatal("expected write failure")
	}
	if !strings.Contains(err.Error(), fixtures.ErrWriteRefused.Error()) {
		t.Fatalf("expected refused write in error, got %v", err)
	}
}

func TestHandlersRequireConverter(t *testing.T) {
	files := fstest.MapFS{"a.md": {Data: []byte("a\n")}}
	handler := NewConvertFileHandler(Dependencies{Open: mapOpener(files)})

	if err := handler.Execute(context.Background(), ConvertFileCommand{Path: "a.md"}); err == nil {
		t.Fatal("expected missing converter error")
	}
}

func TestJSONPath(t *testing.T) {
	cases := map[string]string{
		"a.md":           "a.json",
		"docs/intro.md":  "docs/intro.json",
		"README":         "README.json",
		"notes.v2.mdown": "notes.v2.json",
	}
	for input, want := range cases {
		if got := jsonPath(input); got != want {
			t.Fatalf("jsonPath(%q) = %q, want %q", input, got, want)
		}
	}
}
