package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreGetMissing(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, err := s.Get(context.Background(), "client", "theme"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreSetAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := s.Set(ctx, "a", "theme", "dark"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := s.Set(ctx, "b", "theme", "light"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := s.Set(ctx, "a", "theme", "system"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		scope string
		want  string
	}{
		{"a", "system"},
		{"b", "light"},
	}
	for _, tt := range tests {
		got, err := reopened.Get(ctx, tt.scope, "theme")
		if err != nil {
			t.Fatalf("Unexpected error for %s: %v", tt.scope, err)
		}
		if got != tt.want {
			t.Errorf("Expected %s for scope %s, got %s", tt.want, tt.scope, got)
		}
	}
}

func TestFileStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path); err != nil {
		t.Errorf("Expected empty file to open, got %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Error("Expected error for a corrupt store file")
	}
}
