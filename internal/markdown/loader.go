package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// LoaderConfig configures how markdown files are discovered below a root.
type LoaderConfig struct {
	// BasePath is the directory the filesystem is rooted at. It is used to
	// turn absolute paths into filesystem relative ones.
	BasePath string
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// StripFrontMatter removes YAML/TOML front matter before conversion.
	StripFrontMatter bool
}

// Source is a markdown file ready for conversion.
type Source struct {
	Path         string
	Body         []byte
	FrontMatter  interfaces.FrontMatter
	Checksum     []byte
	LastModified time.Time
}

// Loader reads markdown sources from an fs.FS.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
	strip     bool
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
		strip:     cfg.StripFrontMatter,
	}
}

// LoadFile reads a single markdown file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	sum := sha256.Sum256(data)
	src := &Source{
		Path:         rel,
		Body:         data,
		Checksum:     sum[:],
		LastModified: info.ModTime(),
	}
	if l.strip {
		meta, body, err := ParseFrontMatter(data)
		if err != nil {
			return nil, fmt.Errorf("markdown loader %s: %w", rel, err)
		}
		src.FrontMatter = meta
		src.Body = body
	}
	return src, nil
}

// LoadDirectory returns every matching file under dir, sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.ToSlash(filepath.Clean(root))

	var sources []*Source
	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !l.recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.matchesPattern(path) {
			return nil
		}
		src, err := l.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		sources = append(sources, src)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Path < sources[j].Path
	})
	return sources, nil
}

func (l *Loader) matchesPattern(path string) bool {
	pattern := filepath.ToSlash(l.pattern)
	pattern = strings.ReplaceAll(pattern, "**/", "")
	target := filepath.Base(path)
	if strings.Contains(pattern, "/") {
		target = path
	}
	match, err := filepath.Match(pattern, target)
	return err == nil && match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" || l.basePath == "." {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
	}
	return rel, nil
}
