package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Record is one persisted dataset, keyed by logical name. The value is the
// JSON encoding of the dataset's record shape.
type Record struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// Store is a durable key-value store backed by an embedded SQLite database.
// Each dataset is saved independently; there are no cross-key transactions.
type Store struct {
	db *gorm.DB
}

// NewStore opens (or creates) the database at path and migrates the schema.
func NewStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Load reads the dataset stored under key into dest. It returns false with a
// nil error when the key has never been saved; a decode failure is returned
// as an error so the caller can fall back to an empty initial state.
func (s *Store) Load(ctx context.Context, key string, dest any) (bool, error) {
	var record Record
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load record %q: %w", key, err)
	}

	if err := json.Unmarshal(record.Value, dest); err != nil {
		return false, fmt.Errorf("failed to decode record %q: %w", key, err)
	}
	return true, nil
}

// Save writes the dataset under key, replacing any previous value.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode record %q: %w", key, err)
	}

	record := Record{Key: key, Value: data, UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error; err != nil {
		return fmt.Errorf("failed to save record %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
