// Package storage holds rendered bulk receipts until they are collected.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage writes artifacts into a flat directory on disk.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Upload(_ context.Context, fileID string, content []byte) error {
	// fileID is caller-controlled; keep writes inside the storage dir.
	path := filepath.Join(s.dir, filepath.Base(fileID))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("error uploading file %s: %w", fileID, err)
	}
	return nil
}
