package convertcmd

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// StdoutPath selects standard output as the destination.
const StdoutPath = "-"

// OutputWriter persists converted documents.
type OutputWriter interface {
	WriteFile(path string, data []byte) error
}

// FileWriter writes to the local filesystem, creating parent directories.
// StdoutPath is routed to Stdout.
type FileWriter struct {
	Stdout io.Writer
}

// NewFileWriter returns a FileWriter; a nil stdout selects os.Stdout.
func NewFileWriter(stdout io.Writer) *FileWriter {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &FileWriter{Stdout: stdout}
}

// WriteFile implements OutputWriter.
func (w *FileWriter) WriteFile(path string, data []byte) error {
	if path == StdoutPath {
		if _, err := w.Stdout.Write(data); err != nil {
			return err
		}
		_, err := io.WriteString(w.Stdout, "\n")
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func osFS(dir string) fs.FS {
	return os.DirFS(dir)
}
