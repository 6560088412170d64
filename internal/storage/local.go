package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/natefinch/atomic"
)

// LocalFileStorage implements the Storage interface for local filesystem
type LocalFileStorage struct {
	outputDir string
}

// NewLocalFileStorage creates a new local file storage instance
func NewLocalFileStorage(outputDir string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", outputDir, err)
	}

	return &LocalFileStorage{
		outputDir: outputDir,
	}, nil
}

func (s *LocalFileStorage) path(name string) string {
	return filepath.Join(s.outputDir, filepath.FromSlash(name))
}

// Location returns the path of name on disk
func (s *LocalFileStorage) Location(name string) string {
	return s.path(name)
}

// GetReader returns a reader for the specified file
func (s *LocalFileStorage) GetReader(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path(name))
}

// GetWriter returns a writer that replaces the file atomically on Close
func (s *LocalFileStorage) GetWriter(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.path(name)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	return &atomicWriter{path: path}, nil
}

// FileExists checks if a file exists
func (s *LocalFileStorage) FileExists(ctx context.Context, name string) bool {
	info, err := os.Stat(s.path(name))
	return err == nil && !info.IsDir()
}

// Remove deletes a file
func (s *LocalFileStorage) Remove(ctx context.Context, name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

// ListFiles lists the files in a directory
func (s *LocalFileStorage) ListFiles(ctx context.Context, dir string) ([]string, error) {
	files, err := os.ReadDir(s.path(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var results []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		results = append(results, filepath.ToSlash(filepath.Join(dir, file.Name())))
	}
	sort.Strings(results)
	return results, nil
}

// Close is a no-op for local storage
func (s *LocalFileStorage) Close() error {
	return nil
}

type atomicWriter struct {
	path   string
	buf    bytes.Buffer
	closed bool
}

func (w *atomicWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, os.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *atomicWriter) Close() error {
	if w.closed {
		return os.ErrClosed
	}
	w.closed = true
	if err := atomic.WriteFile(w.path, &w.buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	return nil
}
