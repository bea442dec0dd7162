package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sharetube/watchparty/internal/repository/room"
	roomInmemory "github.com/sharetube/watchparty/internal/repository/room/inmemory"
	roomPostgres "github.com/sharetube/watchparty/internal/repository/room/postgres"
	roomRedis "github.com/sharetube/watchparty/internal/repository/room/redis"
	roomSqlite "github.com/sharetube/watchparty/internal/repository/room/sqlite"
	"github.com/sharetube/watchparty/pkg/redisclient"
)

const (
	storeRedis    = "redis"
	storeSqlite   = "sqlite"
	storePostgres = "postgres"
	storeMemory   = "memory"
)

var storeDrivers = []any{storeRedis, storeSqlite, storePostgres, storeMemory}

type roomRepo interface {
	SaveSnapshot(context.Context, room.Snapshot) error
	GetSnapshot(context.Context) (room.Snapshot, error)
}

// newRoomRepo opens the snapshot store selected by cfg.StoreDriver. The
// returned func releases the store's connections.
func newRoomRepo(ctx context.Context, cfg *AppConfig, logger *slog.Logger) (roomRepo, func(), error) {
	switch cfg.StoreDriver {
	case storeRedis:
		rc := redisclient.NewRedisClient(&redisclient.Config{
			Host:        cfg.RedisHost,
			Port:        cfg.RedisPort,
			Password:    cfg.RedisPassword,
			DialTimeout: cfg.StoreTimeout,
		})
		// writes retry until redis comes back
		if err := redisclient.Ping(ctx, rc); err != nil {
			logger.WarnContext(ctx, "redis is unreachable, continuing without it", "error", err)
		}

		// the snapshot outlives its newest session by one timeout at most
		return roomRedis.NewRepo(rc, logger, cfg.SessionTimeout), func() { rc.Close() }, nil
	case storeSqlite:
		db, err := roomSqlite.Open(cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}

		repo, err := roomSqlite.NewRepo(ctx, db, logger)
		if err != nil {
			db.Close()
			return nil, nil, err
		}

		return repo, func() { db.Close() }, nil
	case storePostgres:
		pool, err := roomPostgres.NewPool(ctx, cfg.PostgresDsn)
		if err != nil {
			return nil, nil, err
		}

		repo, err := roomPostgres.NewRepo(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return repo, pool.Close, nil
	case storeMemory:
		return roomInmemory.NewRepo(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// openRoomRepo never fails: a store that cannot be opened is replaced by the
// in-memory one, so sessions still work but do not survive a restart.
func openRoomRepo(ctx context.Context, cfg *AppConfig, logger *slog.Logger) (roomRepo, func()) {
	repo, closeStore, err := newRoomRepo(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to open snapshot store, falling back to memory", "driver", cfg.StoreDriver, "error", err)
		return roomInmemory.NewRepo(), func() {}
	}

	return repo, closeStore
}
