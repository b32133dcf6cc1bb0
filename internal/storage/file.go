package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// fileStore keeps every preference in one JSON document:
// {"<scope>": {"<key>": "<value>"}}. The whole file is rewritten on each
// Set through a temp file and rename.
type fileStore struct {
	path string

	mu     sync.RWMutex
	scopes map[string]map[string]string
}

// NewFileStore loads path, creating its directory if needed.
// A missing file starts an empty store.
func NewFileStore(path string) (PreferenceStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	s := &fileStore{path: path, scopes: make(map[string]map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read store: %w", err)
	case len(data) == 0:
		return s, nil
	}

	if err := json.Unmarshal(data, &s.scopes); err != nil {
		return nil, fmt.Errorf("failed to decode store %s: %w", path, err)
	}
	if s.scopes == nil {
		s.scopes = make(map[string]map[string]string)
	}
	return s, nil
}

func (s *fileStore) Get(_ context.Context, scope, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.scopes[scope][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *fileStore) Set(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev := s.scopes[scope][key]
	if s.scopes[scope] == nil {
		s.scopes[scope] = make(map[string]string)
	}
	s.scopes[scope][key] = value

	if err := s.flush(); err != nil {
		if hadPrev {
			s.scopes[scope][key] = prev
		} else {
			delete(s.scopes[scope], key)
		}
		return err
	}
	return nil
}

func (s *fileStore) Close() error { return nil }

// flush must be called with mu held.
func (s *fileStore) flush() error {
	data, err := json.Marshal(s.scopes)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}
