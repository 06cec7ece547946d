package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// storedValue is one row of the client-side key/value table
type storedValue struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (storedValue) TableName() string { return "client_storage" }

// SQLiteStorage keeps the token in a local key/value table
type SQLiteStorage struct {
	db  *gorm.DB
	key string
}

var _ TokenStorage = (*SQLiteStorage)(nil)

// NewSQLiteStorage migrates the key/value table and returns the storage
func NewSQLiteStorage(db *gorm.DB, key string) (*SQLiteStorage, error) {
	if key == "" {
		key = TokenKey
	}
	if err := db.AutoMigrate(&storedValue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate client storage: %w", err)
	}
	return &SQLiteStorage{db: db, key: key}, nil
}

func (s *SQLiteStorage) Load(ctx context.Context) (string, error) {
	var row storedValue
	err := s.db.WithContext(ctx).Where("name = ?", s.key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return row.Value, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, token string) error {
	row := storedValue{Name: s.key, Value: token}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("name = ?", s.key).Delete(&storedValue{}).Error; err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStorage) Name() string { return "sqlite" }
