package session

import (
	"log"

	"github.com/pageza/healthtrack/frontend/config"
	"github.com/pageza/healthtrack/frontend/internal/database"
)

// OpenStorage builds the configured token storage, falling back to memory
// when the durable backend is unavailable.
func OpenStorage(cfg *config.Config) TokenStorage {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("warning: redis session storage unavailable, keeping session in memory: %v", err)
			return NewMemoryStorage()
		}
		return NewRedisStorage(client, TokenKey)
	case config.SessionBackendSQLite:
		db, err := database.NewSQLite(cfg.SessionSQLitePath)
		if err != nil {
			log.Printf("warning: sqlite session storage unavailable, keeping session in memory: %v", err)
			return NewMemoryStorage()
		}
		storage, err := NewSQLiteStorage(db, TokenKey)
		if err != nil {
			log.Printf("warning: sqlite session storage unavailable, keeping session in memory: %v", err)
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
			return NewMemoryStorage()
		}
		return storage
	default:
		return NewMemoryStorage()
	}
}
