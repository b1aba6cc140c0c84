// Package persistence selects the configured storage backend.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/rotaboard/rotaboard/internal/application/checklist"
	"github.com/rotaboard/rotaboard/internal/application/snapshot"
	"github.com/rotaboard/rotaboard/internal/config"
	"github.com/rotaboard/rotaboard/internal/infrastructure/persistence/memory"
	"github.com/rotaboard/rotaboard/internal/infrastructure/persistence/postgres"
	"github.com/rotaboard/rotaboard/internal/infrastructure/persistence/sqlite"
)

// Store is the full storage surface both binaries work against.
type Store interface {
	checklist.Repository
	snapshot.Repository
	Close() error
}

type memoryStore struct {
	*memory.Store
}

func (memoryStore) Close() error { return nil }

// NewStore builds the storage backend named by the configuration.
func NewStore(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case config.StoragePostgres:
		return postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTime) * time.Second,
		})
	case config.StorageSQLite:
		return sqlite.NewSQLiteStore(ctx, cfg.SQLitePath)
	case config.StorageMemory:
		return memoryStore{memory.NewStore()}, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
