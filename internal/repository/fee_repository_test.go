package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/navid-fn/feeboard/internal/models"
)

type stubSource struct {
	records []models.FeeRecord
	err     error
	loads   int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(context.Context) ([]models.FeeRecord, error) {
	s.loads++
	return s.records, s.err
}

func TestNewSnapshotFeeRepository(t *testing.T) {
	src := &stubSource{records: []models.FeeRecord{{Symbol: "A"}, {Symbol: "B"}}}

	repo, err := NewSnapshotFeeRepository(context.Background(), src)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	repo.GetAll()
	repo.GetAll()
	if src.loads != 1 {
		t.Errorf("Expected dataset to be loaded once, got %d", src.loads)
	}
	if repo.GetCount() != 2 {
		t.Errorf("Expected 2 records, got %d", repo.GetCount())
	}
}

func TestNewSnapshotFeeRepositoryError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := NewSnapshotFeeRepository(context.Background(), &stubSource{err: boom}); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped load error, got %v", err)
	}
}

func TestNewFeeRepositoryCopies(t *testing.T) {
	records := []models.FeeRecord{{Symbol: "A"}}
	repo := NewFeeRepository(records)
	records[0].Symbol = "changed"

	if repo.GetAll()[0].Symbol != "A" {
		t.Error("Expected repository to own its snapshot")
	}
}
