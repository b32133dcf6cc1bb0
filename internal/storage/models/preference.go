// Package models defines the rows persisted by the storage package.
package models

import "time"

// Preference is one stored key/value setting of a client.
type Preference struct {
	// Scope identifies the client that owns the setting.
	Scope string `gorm:"column:scope;primaryKey" json:"scope"`

	// Key is the storage key (e.g., "theme").
	Key string `gorm:"column:key;primaryKey" json:"key"`

	// Value is the raw stored value.
	Value string `gorm:"column:value" json:"value"`

	// UpdatedAt is the version column; the newest row wins.
	UpdatedAt time.Time `gorm:"column:updated_at;type:DateTime64(3, 'UTC')" json:"updated_at"`
}

func (Preference) TableName() string {
	return "preference"
}

func (Preference) TableOptions() string {
	return "ENGINE = ReplacingMergeTree(updated_at) ORDER BY (scope, key)"
}
