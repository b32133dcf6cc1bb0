// Package dataset loads the fee snapshot the dashboard serves.
// A snapshot is read once at startup and never changes afterwards.
package dataset

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/navid-fn/feeboard/internal/models"
)

// Source yields the raw fee records of a snapshot.
type Source interface {
	Load(ctx context.Context) ([]models.FeeRecord, error)
	Name() string
}

// Decode reads a JSON array of fee records.
func Decode(r io.Reader) ([]models.FeeRecord, error) {
	var records []models.FeeRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode fee dataset: %w", err)
	}
	return records, nil
}

// FileSource reads the snapshot from a JSON file on disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

// Load opens and decodes the dataset file.
func (s *FileSource) Load(_ context.Context) ([]models.FeeRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open fee dataset: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
