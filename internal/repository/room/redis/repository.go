package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sharetube/watchparty/internal/repository/room"
)

const snapshotKey = "rooms:snapshot"

type repo struct {
	rc                *redis.Client
	logger            *slog.Logger
	maxExpireDuration time.Duration
}

func NewRepo(rc *redis.Client, logger *slog.Logger, maxExpireDuration time.Duration) *repo {
	return &repo{
		rc:                rc,
		logger:            logger,
		maxExpireDuration: maxExpireDuration,
	}
}

// SaveSnapshot replaces the stored snapshot with snapshot in one transaction.
func (r repo) SaveSnapshot(ctx context.Context, snapshot room.Snapshot) error {
	r.logger.DebugContext(ctx, "called", "rooms", len(snapshot))

	fields := make(map[string]any, len(snapshot))
	for id, rm := range snapshot {
		data, err := room.Encode(rm)
		if err != nil {
			return err
		}

		fields[id] = data
	}

	pipe := r.rc.TxPipeline()
	pipe.Del(ctx, snapshotKey)
	if len(fields) > 0 {
		pipe.HSet(ctx, snapshotKey, fields)
		pipe.Expire(ctx, snapshotKey, r.maxExpireDuration)
	}

	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

func (r repo) GetSnapshot(ctx context.Context) (room.Snapshot, error) {
	res, err := r.rc.HGetAll(ctx, snapshotKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snapshot := make(room.Snapshot, len(res))
	for id, data := range res {
		rm, err := room.Decode(id, []byte(data))
		if err != nil {
			r.logger.WarnContext(ctx, "skipping snapshot entry", "room_id", id, "error", err)
			continue
		}

		snapshot[id] = rm
	}

	r.logger.DebugContext(ctx, "snapshot loaded", "rooms", len(snapshot))
	return snapshot, nil
}
