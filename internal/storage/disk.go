package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes blobs under a base directory, keeping the original
// extension but replacing the name with a generated uuid.
type DiskStore struct {
	baseDir string
}

// NewDiskStore constructs a store rooted at baseDir.
func NewDiskStore(baseDir string) *DiskStore {
	return &DiskStore{baseDir: baseDir}
}

// Save streams the body to disk and returns the stored reference path.
func (s *DiskStore) Save(_ context.Context, originalName string, body io.Reader) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(originalName)
	fullPath := filepath.Join(s.baseDir, name)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/" + filepath.ToSlash(filepath.Join(s.baseDir, name)), nil
}
