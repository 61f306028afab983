package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/teacher-admin-api/internal/handler"
	"github.com/noah-isme/teacher-admin-api/internal/repository"
	"github.com/noah-isme/teacher-admin-api/pkg/cache"
	"github.com/noah-isme/teacher-admin-api/pkg/config"
	"github.com/noah-isme/teacher-admin-api/pkg/database"
	"github.com/noah-isme/teacher-admin-api/pkg/storage"
)

// snapshotBackend is the configured store plus what main needs to probe and release it.
type snapshotBackend struct {
	store   repository.SnapshotStore
	checks  map[string]handler.ReadinessCheck
	closers []func() error
}

func (b *snapshotBackend) Close(logr *zap.Logger) {
	for _, closeFn := range b.closers {
		if err := closeFn(); err != nil {
			logr.Warn("failed to close storage backend", zap.Error(err))
		}
	}
}

func openSnapshotBackend(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*snapshotBackend, error) {
	key := cfg.Storage.Key
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return &snapshotBackend{store: repository.NewMemorySnapshotStore()}, nil

	case config.StorageFile, "":
		files, err := storage.NewLocalStorage(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("open storage dir: %w", err)
		}
		logr.Info("using file snapshot store", zap.String("path", files.Path(key+".json")))
		return &snapshotBackend{store: repository.NewFileSnapshotStore(files, key)}, nil

	case config.StorageRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		store := repository.NewRedisSnapshotStore(client, key)
		return &snapshotBackend{
			store:   store,
			checks:  map[string]handler.ReadinessCheck{"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() }},
			closers: []func() error{store.Close},
		}, nil

	case config.StoragePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		store := repository.NewPostgresSnapshotStore(db, key)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure snapshot schema: %w", err)
		}
		return &snapshotBackend{
			store:   store,
			checks:  map[string]handler.ReadinessCheck{"postgres": db.PingContext},
			closers: []func() error{db.Close},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
