package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/snap-site/internal/adapter/manifest"
	"github.com/user/snap-site/internal/adapter/memory"
	"github.com/user/snap-site/internal/adapter/postgres"
	redis_adapter "github.com/user/snap-site/internal/adapter/redis"
	"github.com/user/snap-site/internal/usecase"
	"github.com/user/snap-site/pkg/config"
	"go.uber.org/zap"
)

// openStores connects every result store the configuration asks for. The
// in-memory store backing the status server is always present.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (usecase.ResultStores, *memory.ResultStoreImpl, error) {
	captures := memory.NewResultStore()
	stores := usecase.ResultStores{captures}

	fail := func(err error) (usecase.ResultStores, *memory.ResultStoreImpl, error) {
		_ = stores.Close(context.Background())
		return nil, nil, err
	}

	// Redis
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := redis_adapter.NewResultStore(rdb)
		if err := store.Ping(ctx); err != nil {
			_ = rdb.Close()
			return fail(fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err))
		}
		stores = append(stores, store)
		log.Info("Redis connection established", zap.String("addr", cfg.RedisAddr))
	}

	// PostgreSQL
	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return fail(fmt.Errorf("connecting to postgres: %w", err))
		}
		store := postgres.NewResultStore(dbpool, dbpool.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			dbpool.Close()
			return fail(err)
		}
		stores = append(stores, store)
		log.Info("PostgreSQL connection pool established")
	}

	if cfg.ManifestPath != "" {
		stores = append(stores, manifest.NewResultStore(cfg.ManifestPath))
	}
	return stores, captures, nil
}
