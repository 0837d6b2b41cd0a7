package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skyfare/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKVRepository implements KeyValueRepository on a SQL table
type GormKVRepository struct {
	db *gorm.DB
}

// KVEntries GORM model for database mapping
type KVEntries struct {
	Key       string `gorm:"column:key;primaryKey"`
	Value     []byte `gorm:"column:value"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (KVEntries) TableName() string {
	return "kv_store"
}

// NewGormKVRepository creates a new GORM key/value repository and migrates its table
func NewGormKVRepository(db *gorm.DB) (repository.KeyValueRepository, error) {
	if err := db.AutoMigrate(&KVEntries{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_store: %w", err)
	}
	return &GormKVRepository{
		db: db,
	}, nil
}

// Get finds a value by key
func (r *GormKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntries
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&entry)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	if entry.Value == nil {
		return []byte{}, nil
	}
	return entry.Value, nil
}

// Set inserts or updates a key
func (r *GormKVRepository) Set(ctx context.Context, key string, value []byte) error {
	entry := KVEntries{
		Key:   key,
		Value: value,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)

	return result.Error
}

// Delete removes a key
func (r *GormKVRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntries{})
	return result.Error
}
