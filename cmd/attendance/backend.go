package main

import (
	"context"
	"fmt"

	"github.com/alem-hub/attendance-tracker/config"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence/file"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence/sqlite"
)

// openBackend connects the storage backend selected by the configuration.
func openBackend(ctx context.Context, cfg *config.Config) (persistence.Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return wrap(file.New(cfg.Storage.DataDir))

	case config.BackendSQLite:
		return wrap(sqlite.Open(ctx, cfg.SQLitePath()))

	case config.BackendRedis:
		rc := redis.DefaultConfig()
		rc.URL = cfg.Redis.URL
		rc.Host = cfg.Redis.Host
		rc.Port = cfg.Redis.Port
		rc.Password = cfg.Redis.Password
		rc.DB = cfg.Redis.DB
		rc.KeyPrefix = cfg.Redis.KeyPrefix
		rc.DialTimeout = cfg.Redis.DialTimeout
		rc.ReadTimeout = cfg.Redis.ReadTimeout
		rc.WriteTimeout = cfg.Redis.WriteTimeout
		return wrap(redis.New(ctx, rc))

	case config.BackendPostgres:
		return wrap(postgres.Open(ctx, cfg.Database.URL, postgres.PoolOptions{
			MaxConns:        int32(cfg.Database.MaxConns),
			MinConns:        int32(cfg.Database.MinConns),
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
			MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		}))

	case config.BackendMemory:
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// wrap keeps a failed constructor from yielding a non-nil interface holding
// a nil pointer.
func wrap[B persistence.Backend](b B, err error) (persistence.Backend, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}
