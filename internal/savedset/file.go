package savedset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileRepository stores the set as <dir>/<key>.json.
// Writes go through a temp file and rename, so readers never observe a partial file.
type FileRepository struct {
	path string
}

// NewFileRepository creates a repository backed by <dir>/<key>.json
func NewFileRepository(dir, key string) *FileRepository {
	if key == "" {
		key = DefaultKey
	}
	return &FileRepository{path: filepath.Join(dir, key+".json")}
}

// Path returns the file backing the set
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and decodes the file. A missing file is ErrNotFound.
func (r *FileRepository) Load(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read saved set: %w", err)
	}
	return Decode(data)
}

// Save atomically replaces the file
func (r *FileRepository) Save(_ context.Context, ids []string) error {
	data, err := Encode(ids)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create saved set directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write saved set: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write saved set: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace saved set: %w", err)
	}
	return nil
}
