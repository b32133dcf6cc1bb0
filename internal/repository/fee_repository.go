package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/navid-fn/feeboard/internal/dataset"
	"github.com/navid-fn/feeboard/internal/models"
)

// FeeRepository exposes the immutable fee snapshot.
type FeeRepository interface {
	// GetAll returns every raw record in dataset order.
	GetAll() []models.FeeRecord

	// GetCount returns the number of raw records.
	GetCount() int
}

type snapshotFeeRepository struct {
	records []models.FeeRecord
}

// NewSnapshotFeeRepository loads src once and serves that snapshot.
func NewSnapshotFeeRepository(ctx context.Context, src dataset.Source) (FeeRepository, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s dataset: %w", src.Name(), err)
	}
	return NewFeeRepository(records), nil
}

// NewFeeRepository serves a copy of records.
func NewFeeRepository(records []models.FeeRecord) FeeRepository {
	return &snapshotFeeRepository{records: slices.Clone(records)}
}

func (r *snapshotFeeRepository) GetAll() []models.FeeRecord {
	return r.records
}

func (r *snapshotFeeRepository) GetCount() int {
	return len(r.records)
}
