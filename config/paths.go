package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName        = "healthtrack"
	sessionDBFileName = "session.db"
)

// DefaultSessionPath is where the sqlite session backend keeps its file
func DefaultSessionPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, sessionDBFileName), nil
}

// EnsureDir creates the parent directory of path
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
