package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adiwijaya/tokokita-backend/pkg/db/models"
	"github.com/adiwijaya/tokokita-backend/pkg/kv"
)

// BlobStore adapts the relational connection to the kv.Store surface.
// Each key maps to one row; writes upsert the whole blob.
type BlobStore struct {
	conn *gorm.DB
}

func NewBlobStore(client *Client) *BlobStore {
	return &BlobStore{conn: client.DB()}
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record models.KVRecord
	err := s.conn.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.Value, nil
}

func (s *BlobStore) Set(ctx context.Context, key string, value []byte) error {
	record := models.KVRecord{Key: key, Value: value}
	return s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
}
