package kv

import (
	"fmt"

	"github.com/dentcare/dentcare_backend/config"
)

// NewFromConfig selects the backend named by storage.backend.
func NewFromConfig(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "sqlite":
		return NewSQLite(cfg.Path)
	case "redis":
		return NewRedis(cfg.Redis)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
