// Package storage persists small per-client preferences, the server side
// counterpart of a browser's local storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/clickhouse"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/navid-fn/feeboard/internal/storage/models"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("preference not found")

// PreferenceStore reads and writes string values by (scope, key).
// Implementations must be safe for concurrent use.
type PreferenceStore interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, scope, key string) (string, error)

	// Set stores value, replacing any previous one.
	Set(ctx context.Context, scope, key, value string) error

	// Close releases underlying resources.
	Close() error
}

// gormStore keeps preferences in the ClickHouse preference table.
// Writes are inserts; ReplacingMergeTree(updated_at) collapses old
// versions and reads pick the newest row.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore opens a ClickHouse connection through gorm.
func NewGormStore(dsn string) (PreferenceStore, error) {
	db, err := gorm.Open(clickhouse.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormStoreFromDB(db), nil
}

// NewGormStoreFromDB wraps an already opened gorm handle.
func NewGormStoreFromDB(db *gorm.DB) PreferenceStore {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, scope, key string) (string, error) {
	var prefs []models.Preference
	err := s.db.WithContext(ctx).
		Where("scope = ? AND `key` = ?", scope, key).
		Order("updated_at DESC").
		Limit(1).
		Find(&prefs).Error
	if err != nil {
		return "", err
	}
	if len(prefs) == 0 {
		return "", ErrNotFound
	}
	return prefs[0].Value, nil
}

func (s *gormStore) Set(ctx context.Context, scope, key, value string) error {
	return s.db.WithContext(ctx).Create(&models.Preference{
		Scope:     scope,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}).Error
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
