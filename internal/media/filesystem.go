package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSystemStore writes uploads under a local root directory.
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates the root directory if needed.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &FileSystemStore{root: root}, nil
}

// Save writes the upload and returns its path relative to the media root.
func (s *FileSystemStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	name := objectName(filename)
	destPath := filepath.Join(s.root, name)

	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(destPath)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return "/media/" + name, nil
}
