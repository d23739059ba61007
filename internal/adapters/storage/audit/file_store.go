package audit

import (
	"context"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	domain "diary/internal/domain/audit"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileStore implements Store by appending one JSON object per line to a
// local file. The file is opened per append so the handle never outlives
// the write, even on error.
type FileStore struct {
	path string
}

// Compile-time check that *FileStore satisfies Store.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore writing to the file at path.
// PRE: path is non-empty
// POST: store is ready; the file is created on first append
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append writes the entry as one JSON line.
// PRE: e.Validate() returns nil
// POST: the line is appended; prior contents are never rewritten
func (s *FileStore) Append(_ context.Context, e domain.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid audit entry: %w", err)
	}
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit log %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write audit log %s: %w", s.path, err)
	}
	return nil
}
