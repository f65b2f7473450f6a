// Package fixtures holds recorders shared by command handler tests.
package fixtures

import (
	"errors"
	"sort"
	"sync"
)

// RecordingRegistry captures registered command handlers.
type RecordingRegistry struct {
	Handlers []any
	Err      error
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// RegisterCommand records handler, or fails with Err when set.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// ErrWriteRefused is returned by RecordingWriter for refused paths.
var ErrWriteRefused = errors.New("fixtures: write refused")

// RecordingWriter keeps converted output in memory.
type RecordingWriter struct {
	mu     sync.Mutex
	files  map[string][]byte
	refuse map[string]bool
}

// NewRecordingWriter constructs an empty writer recorder.
func NewRecordingWriter() *RecordingWriter {
	return &RecordingWriter{
		files:  make(map[string][]byte),
		refuse: make(map[string]bool),
	}
}

// Refuse makes writes to path fail with ErrWriteRefused.
func (w *RecordingWriter) Refuse(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refuse[path] = true
}

// WriteFile records data under path.
func (w *RecordingWriter) WriteFile(path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.refuse[path] {
		return ErrWriteRefused
	}
	w.files[path] = append([]byte(nil), data...)
	return nil
}

// File returns the data written to path.
func (w *RecordingWriter) File(path string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[path]
	return data, ok
}

// Paths lists written paths in sorted order.
func (w *RecordingWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
