package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(filepath.Join(dir, "uploads", "complaints"))

	path, err := store.Save(context.Background(), "pothole.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("path = %q, want .jpg extension preserved", path)
	}
	if !strings.HasPrefix(path, "/") {
		t.Errorf("path = %q, want leading slash reference path", path)
	}

	content, err := os.ReadFile(filepath.Join(dir, "uploads", "complaints", filepath.Base(path)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(content) != "jpeg-bytes" {
		t.Errorf("content = %q, want jpeg-bytes", content)
	}
}

func TestDiskStoreGeneratesUniqueNames(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	first, err := store.Save(context.Background(), "same.png", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := store.Save(context.Background(), "same.png", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first == second {
		t.Errorf("expected unique names, got %q twice", first)
	}
}
