package credstore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/config"
	"github.com/spec-kit/sojus-client/internal/persistence"
)

// Open builds the store selected by cfg.Store.Backend. The returned close
// function releases backend connections and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	noop := func() {}
	logger = logger.Named("credstore")

	switch cfg.Store.Backend {
	case config.StoreMemory:
		return NewMemoryStore(), noop, nil

	case config.StoreRedis:
		rdb, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		prefix := cfg.Store.RedisPrefix + cfg.Store.Profile + ":"
		return NewRedisStore(rdb.Client, prefix, logger), rdb.Close, nil

	case config.StorePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, noop, fmt.Errorf("run migrations: %w", err)
			}
		}
		return NewPostgresStore(pg.PoolHandle(), cfg.Store.Profile, logger), pg.Close, nil

	case config.StoreFile, "":
		return NewFileStore(cfg.Store.Path, cfg.Store.Passphrase, logger), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown credential store backend %q", cfg.Store.Backend)
}
