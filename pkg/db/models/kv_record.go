package models

import "time"

// KVRecord is one durable blob. The transaction log lives in a single
// row keyed by the configured storage key.
type KVRecord struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}
