package dataset

import (
	"context"
	"fmt"
	"os"
)

// Source produces a fresh base table.
type Source interface {
	Load(ctx context.Context) (*Table, error)
	Describe() string
}

// FileSource reads the session CSV from disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", s.Path, err)
	}
	defer f.Close()

	table, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", s.Path, err)
	}
	return table, nil
}

func (s *FileSource) Describe() string { return "csv:" + s.Path }
