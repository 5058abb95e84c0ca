package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/silkmarket/core/internal/domain/entities"
)

// FileSink stores the dataset as one indented JSON document.
type FileSink struct {
	path string
}

// NewFileSink returns a sink writing to path. Parent directories are created on save.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (f *FileSink) Name() string { return "file" }

// Path returns the snapshot file location
func (f *FileSink) Path() string { return f.path }

func (f *FileSink) Load(ctx context.Context) (*entities.Dataset, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, entities.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var data entities.Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", entities.ErrCorruptSnapshot, f.path, err)
	}
	return &data, nil
}

// Save writes to a temporary file and renames it over the snapshot so a
// crash mid-write never leaves a truncated document behind.
func (f *FileSink) Save(ctx context.Context, data *entities.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (f *FileSink) Close() error { return nil }
