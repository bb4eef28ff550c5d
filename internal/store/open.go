package store

import (
	"context"
	"fmt"

	"github.com/pbaille/planner/internal/config"
	"github.com/pbaille/planner/internal/logger"
)

// Open connects the storage backend selected by cfg and binds a DocumentStore to it
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (*DocumentStore, error) {
	var (
		storage Storage
		err     error
	)

	switch cfg.Storage {
	case config.StorageRedis:
		storage, err = NewRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case config.StorageSQLite, "":
		storage, err = NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("open store: unknown storage %q", cfg.Storage)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	log.Debug("storage opened", "backend", cfg.Storage, "key", cfg.StorageKey)
	return NewDocumentStore(storage, cfg.StorageKey, log), nil
}
