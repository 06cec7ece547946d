package database

import (
	"fmt"
	"log"

	"github.com/pageza/healthtrack/frontend/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLite opens (creating if needed) the sqlite file at path
func NewSQLite(path string) (*gorm.DB, error) {
	if err := config.EnsureDir(path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Opened sqlite database at %s", path)
	return db, nil
}
